// Feedback HTTP handlers.
//
// This file exposes the REST endpoint for submitting feedback on a recorded
// summary:
//   - POST /summaries/{id}/feedback  (create feedback)
//
// The rating range (1–5) is enforced here, at the binding layer; the layers
// below deliberately do not re-check it. The log id is likewise not verified
// against the audit table — feedback on an id that never existed records
// fine, which keeps the feedback path available even when event logging
// failed for the summary being rated.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intellinotes/go-notes-backend/internal/services"
	"github.com/intellinotes/go-notes-backend/internal/utils"
)

// LeaveFeedbackRequest is the JSON payload for creating feedback on a
// recorded summary.
type LeaveFeedbackRequest struct {
	// Rating is the summary quality score, 1 (poor) to 5 (excellent).
	Rating int `json:"rating" binding:"required,min=1,max=5" example:"5"`
	// Comment optionally carries free-form feedback text.
	Comment string `json:"comment,omitempty" example:"Caught every action item."`
}

// LeaveFeedback godoc
// @ID          leaveFeedback
// @Summary     Leave feedback on a recorded summary
// @Description Records a 1–5 rating and optional comment against a summary event log id.
// @Tags        Feedback
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"   example(user123)
// @Param       id         path    int     true  "Summary event log id"    example(42)
// @Param       body       body    handlers.LeaveFeedbackRequest true "Feedback payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid payload or log id"
// @Failure     500  {object} handlers.ErrorResponse "Feedback could not be recorded"
// @Router      /summaries/{id}/feedback [post]
func (h *Handlers) LeaveFeedback(c *gin.Context) {
	var req LeaveFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating must be between 1 and 5")
		return
	}

	logID := int64(utils.AtoiDefault(c.Param("id"), 0))
	if logID <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "log id must be a positive integer")
		return
	}

	if err := h.fbSvc.Leave(c.Request.Context(), logID, userID(c), req.Comment, req.Rating); err != nil {
		switch err {
		case services.ErrInvalidFeedback:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "log id and user id are required")
		case services.ErrFeedbackFailed:
			fail(c, http.StatusInternalServerError, ErrCodeFeedbackFailed, "feedback could not be recorded")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		}
		return
	}

	noContent(c)
}
