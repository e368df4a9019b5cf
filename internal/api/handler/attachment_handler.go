package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// maxUploadBytes caps a single attachment at 20 MiB.
const maxUploadBytes = 20 << 20

// AttachmentHandler handles attachment upload and removal for maintenance
// records.
type AttachmentHandler struct {
	service ports.AttachmentService
}

func NewAttachmentHandler(service ports.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// Upload stores one multipart file against a maintenance record.
//
// @Summary      Upload an attachment
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Maintenance id"
// @Param        file  formData  file    true  "File to attach"
// @Success      201   {object}  domain.Attachment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      413   {object}  map[string]string
// @Router       /mantenimientos/{id}/archivos [post]
func (h *AttachmentHandler) Upload(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file field is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds the 20MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	created, err := h.service.Upload(c.Request().Context(), actor, c.Param("id"), ports.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Reader:      f,
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.RecordsMutatedTotal.WithLabelValues(domain.EntityAttachment, domain.ActivityCreated).Inc()
	return c.JSON(http.StatusCreated, created)
}

// Delete removes one attachment and its stored payload.
//
// @Summary      Delete an attachment
// @Tags         attachments
// @Security     BearerAuth
// @Param        archivoId  path  string  true  "Attachment id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /mantenimientos/archivo/{archivoId} [delete]
func (h *AttachmentHandler) Delete(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("archivoId")); err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(domain.EntityAttachment, domain.ActivityDeleted).Inc()
	return c.NoContent(http.StatusNoContent)
}
