// Template HTTP handlers.
//
// This file exposes the read-only template catalog:
//   - GET /templates  (list all summarization templates, ordered by name)
//
// An empty array is a normal response: it means either the catalog is empty
// or the read failed — the distinction lives only in the server log. The
// web client treats both as "no templates available".
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intellinotes/go-notes-backend/internal/services"
)

// ListTemplatesResponse wraps the template catalog.
type ListTemplatesResponse struct {
	Templates []services.TemplateView `json:"templates"`
}

// ListTemplates godoc
// @ID          listTemplates
// @Summary     List summarization templates
// @Description Returns the prompt template catalog ordered by name ascending.
// @Tags        Templates
// @Produce     json
//
// @Success     200  {object}  handlers.ListTemplatesResponse
// @Router      /templates [get]
func (h *Handlers) ListTemplates(c *gin.Context) {
	ok(c, http.StatusOK, ListTemplatesResponse{
		Templates: h.tmplSvc.List(c.Request.Context()),
	})
}
