package ticket

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/sirupsen/logrus"

	"luckyticket/internal/pkg/response"
)

// maxViewBytes bounds the render request body; views carry no image payloads
// beyond a logo URI.
const maxViewBytes = 1 << 20

type Handler struct {
	log *logrus.Logger
}

func NewHandler(log *logrus.Logger) *Handler {
	return &Handler{log: log}
}

// Render godoc
// @Summary Render a lucky ticket card
// @Tags Tickets
// @Accept json
// @Produce html
// @Param fragment query bool false "return only the card markup"
// @Success 200 {string} string "text/html"
// @Failure 400,413 {object} map[string]interface{}
// @Router /tickets/render [post]
func (h *Handler) Render(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxViewBytes+1))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body")
		return
	}
	if len(body) > maxViewBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "request body too large")
		return
	}

	view, err := DecodeView(body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid ticket view")
		return
	}

	name := "ticket_page"
	if c.Query("fragment") == "true" || c.Query("fragment") == "1" {
		name = "ticket"
	}
	h.log.WithField("filter", view.Filter).Debug("rendering ticket")
	c.Render(http.StatusOK, render.HTML{Template: Templates, Name: name, Data: newRenderData(view)})
}
