package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// LocalStore keeps blobs as files in a single directory.
type LocalStore struct {
	root      string
	urlPrefix string
}

// NewLocalStore ensures root exists. References are "/<urlPrefix>/<name>".
func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root, urlPrefix: urlPrefix}, nil
}

func (l *LocalStore) Put(_ context.Context, name string, body io.ReadSeeker, _ string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	target := filepath.Join(l.root, name)
	f, err := os.Create(target)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(target)
		return "", err
	}
	return Reference(l.urlPrefix, name), nil
}

func (l *LocalStore) Open(_ context.Context, name string) (*Object, error) {
	if err := checkName(name); err != nil {
		return nil, ErrNotFound
	}

	f, err := os.Open(filepath.Join(l.root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, ErrNotFound
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Object{Body: f, ContentType: contentType, ContentLength: stat.Size()}, nil
}
