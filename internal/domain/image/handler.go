package image

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"luckyticket/internal/metrics"
	"luckyticket/internal/pkg/response"
	"luckyticket/internal/storage"
)

// Handler handles HTTP requests for image upload and lookup.
type Handler struct {
	service    *Service
	store      storage.FileStore
	log        *logrus.Logger
	trustProxy bool
}

func NewHandler(service *Service, store storage.FileStore, log *logrus.Logger, trustProxy bool) *Handler {
	return &Handler{service: service, store: store, log: log, trustProxy: trustProxy}
}

func (h *Handler) requestContext(c *gin.Context) RequestContext {
	return NewRequestContext(c.Request, h.trustProxy)
}

// Upload godoc
// @Summary Upload a base64 image
// @Tags Images
// @Accept json
// @Produce json
// @Param body body UploadRequest true "userId and data:image/<subtype>;base64,<payload>"
// @Success 201 {object} UploadResponse
// @Failure 400,404,413,500 {object} map[string]interface{}
// @Router /upload [post]
func (h *Handler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			metrics.RecordUpload("too_large")
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "request body too large")
			return
		}
		metrics.RecordUpload("bad_request")
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body")
		return
	}

	res, err := h.service.Upload(c.Request.Context(), h.requestContext(c), string(req.UserID), req.Image)
	if err != nil {
		status := h.writeError(c, err, "base64 image save failed")
		metrics.RecordUpload(uploadResult(status))
		return
	}

	metrics.RecordUpload("created")
	response.JSON(c, http.StatusCreated, res)
}

// GetByUser godoc
// @Summary Get an image of a user
// @Tags Images
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} UserImageResponse
// @Failure 400,404,500 {object} map[string]interface{}
// @Router /image/{userId} [get]
func (h *Handler) GetByUser(c *gin.Context) {
	res, err := h.service.GetByUser(c.Request.Context(), h.requestContext(c), c.Param("userId"))
	if err != nil {
		h.writeError(c, err, "image lookup failed")
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// ListAll godoc
// @Summary List all images, newest first
// @Tags Images
// @Produce json
// @Success 200 {array} ImageItem
// @Failure 404,500 {object} map[string]interface{}
// @Router /allImages [get]
func (h *Handler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context(), h.requestContext(c))
	if err != nil {
		h.writeError(c, err, "image listing failed")
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// ListByFilter godoc
// @Summary Latest image per AI content row, optionally filtered by tag substring
// @Tags Images
// @Accept json
// @Produce json
// @Param body body FilterRequest false "optional filterStr"
// @Success 200 {array} FilterImageItem
// @Failure 400,404,500 {object} map[string]interface{}
// @Router /filterImages [post]
func (h *Handler) ListByFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body")
		return
	}

	filter := ""
	if req.FilterStr != nil {
		filter = *req.FilterStr
	}

	items, err := h.service.ListByFilter(c.Request.Context(), h.requestContext(c), filter)
	if err != nil {
		h.writeError(c, err, "filter image lookup failed")
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// ServeBlob streams a stored image for /uploads/:filename.
func (h *Handler) ServeBlob(c *gin.Context) {
	name := c.Param("filename")
	obj, err := h.store.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.WithError(err).WithField("filename", name).Error("blob read failed")
		c.Status(http.StatusInternalServerError)
		return
	}
	defer obj.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj, map[string]string{
		"Cache-Control": "public, max-age=31536000, immutable",
	})
}

// writeError maps service errors to a status and writes the envelope.
// Unexpected errors are logged in full and reported generically.
func (h *Handler) writeError(c *gin.Context, err error, logMsg string) int {
	switch {
	case errors.Is(err, ErrImageRequired),
		errors.Is(err, ErrInvalidUserID),
		errors.Is(err, ErrInvalidImage):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return http.StatusBadRequest
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrImageNotFound),
		errors.Is(err, ErrNoImages),
		errors.Is(err, ErrNoContent),
		errors.Is(err, ErrNoFilteredImages):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		return http.StatusNotFound
	default:
		h.log.WithError(err).
			WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			Error(logMsg)
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "server error")
		return http.StatusInternalServerError
	}
}

func uploadResult(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "error"
	}
}
