package handlers

import (
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const attachmentField = "file"

// ComplaintsHandler manages complaint endpoints and attachment downloads.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// ListComplaints GET /api/complaints.
func (h *ComplaintsHandler) ListComplaints(c *fiber.Ctx) error {
	complaints, err := h.service.ListComplaints(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, dto.NewComplaintResponse(&complaints[i]))
	}
	return c.JSON(items)
}

// GetComplaint GET /api/complaints/:id.
func (h *ComplaintsHandler) GetComplaint(c *fiber.Ctx) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	complaint, err := h.service.GetComplaint(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// CreateComplaint POST /api/complaints (multipart form).
func (h *ComplaintsHandler) CreateComplaint(c *fiber.Ctx) error {
	var form dto.CreateComplaintForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("Missing required fields")
	}
	userID, err := form.Validate()
	if err != nil {
		return err
	}

	input := service.ComplaintCreateInput{
		Category:    form.Category,
		Description: form.Description,
		Location:    form.Location,
		RoomNumber:  form.RoomNumberPtr(),
		UserID:      userID,
	}

	if header := attachmentHeader(c); header != nil {
		file, err := header.Open()
		if err != nil {
			return err
		}
		defer file.Close()
		input.Attachment = &service.AttachmentInput{
			FileName:    header.Filename,
			ContentType: header.Header.Get(fiber.HeaderContentType),
			Body:        file,
		}
	}

	complaint, err := h.service.CreateComplaint(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewComplaintResponse(complaint))
}

// DeleteComplaint DELETE /api/complaints/:id.
func (h *ComplaintsHandler) DeleteComplaint(c *fiber.Ctx) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	var actorID int64
	if user, ok := auth.UserFromContext(c); ok {
		actorID = user.ID
	}
	if err := h.service.DeleteComplaint(c.UserContext(), id, actorID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Complaint deleted successfully"})
}

// ServeAttachment GET /uploads/:name.
func (h *ComplaintsHandler) ServeAttachment(c *fiber.Ctx) error {
	obj, err := h.service.OpenAttachment(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, obj.ContentType)
	size := int(obj.ContentLength)
	if size <= 0 {
		size = -1
	}
	// fasthttp closes the body once it has been streamed.
	return c.SendStream(obj.Body, size)
}

// complaintID parses the :id segment. Anything that is not a positive
// integer cannot name a complaint, so it is reported as not found.
func complaintID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("Complaint")
	}
	return id, nil
}

// attachmentHeader returns the uploaded "file" part, or nil when the request
// carries none (including non-multipart requests and an empty file input).
func attachmentHeader(c *fiber.Ctx) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	files := form.File[attachmentField]
	if len(files) == 0 || files[0].Filename == "" {
		return nil
	}
	return files[0]
}
