// Package blob stores complaint attachments and hands back references that
// the HTTP layer can resolve again under /uploads.
package blob

import (
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"strings"
)

// ErrNotFound is returned by Open when no blob exists under the name.
var ErrNotFound = errors.New("blob not found")

// ErrInvalidName is returned when a name is empty after sanitizing.
var ErrInvalidName = errors.New("invalid blob name")

// Object is a stored blob opened for reading.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// Store persists uploaded files. Put overwrites any existing blob with the
// same name.
type Store interface {
	Put(ctx context.Context, name string, body io.ReadSeeker, contentType string) (string, error)
	Open(ctx context.Context, name string) (*Object, error)
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded filename to a safe base name: path
// components are dropped, whitespace runs become "_", anything outside
// [A-Za-z0-9_.-] is removed and leading/trailing dots and underscores are
// trimmed. The result may be empty.
func SanitizeFilename(name string) string {
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// Reference builds the "/<prefix>/<name>" path recorded on complaints.
func Reference(prefix, name string) string {
	return "/" + path.Join(strings.Trim(prefix, "/"), name)
}

func checkName(name string) error {
	if name == "" || SanitizeFilename(name) != name {
		return ErrInvalidName
	}
	return nil
}
