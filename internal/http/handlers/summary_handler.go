// Summary HTTP handlers.
//
// This file exposes the REST endpoints for summary generation and the audit
// history:
//   - POST /summaries   (summarize a transcript and record the attempt)
//   - GET  /summaries   (list recorded attempts, paginated)
//
// Handlers are transport-thin: they validate and normalize inputs, delegate
// to SummaryService, and translate service errors into HTTP results.
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// result exists for (user, key), the handler replays the recorded summary
// event and sets `Idempotency-Replayed: true` instead of calling the LLM
// again.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intellinotes/go-notes-backend/internal/http/middleware"
	"github.com/intellinotes/go-notes-backend/internal/services"
	"github.com/intellinotes/go-notes-backend/internal/utils"
)

//
// DTOs
//

// CreateSummaryRequest is the JSON payload for summarizing a transcript.
//
// Template selects a catalog entry by name; selecting "Custom Prompt"
// requires CustomPrompt to carry the prompt body.
type CreateSummaryRequest struct {
	// Transcript is the meeting transcript text. It must be non-empty.
	Transcript string `json:"transcript" binding:"required,min=1" example:"Alice: let's review the Q3 pipeline..."`
	// Template is the catalog template name.
	Template string `json:"template" binding:"required,min=1" example:"General Meeting"`
	// CustomPrompt carries the prompt body when Template is "Custom Prompt".
	CustomPrompt string `json:"custom_prompt,omitempty" example:"Summarize as a bullet list of decisions."`
}

// ListSummariesResponse contains a page of audit rows and pagination metadata.
type ListSummariesResponse struct {
	Summaries  []services.HistoryPage `json:"summaries"`
	Pagination Pagination             `json:"pagination"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

//
// Helpers
//

// clampPagination parses page/page_size from query parameters, applies sane
// defaults and caps, and returns the validated (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// CreateSummary godoc
// @ID          createSummary
// @Summary     Summarize a transcript
// @Description Generates a summary with the configured LLM and records the attempt in the audit log.
// @Tags        Summaries
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID (demo header)"        example(user123)
// @Param       Idempotency-Key  header  string  false "Safe-retry key"
// @Param       body             body    handlers.CreateSummaryRequest true "Summarization payload"
//
// @Success     200  {object}  services.SummaryResult
// @Failure     400  {object}  handlers.ErrorResponse "Invalid payload"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown template"
// @Failure     502  {object}  handlers.ErrorResponse "Generation failed"
// @Failure     500  {object}  handlers.ErrorResponse "Internal server error"
// @Router      /summaries [post]
func (h *Handlers) CreateSummary(c *gin.Context) {
	var req CreateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "transcript and template are required")
		return
	}

	uid := userID(c)
	ctx := c.Request.Context()

	// Serve a replay instead of re-running the LLM when this exact request
	// already completed.
	if key, hasKey := middleware.GetIdempotencyKey(c); hasKey && middleware.IsReplay(c) {
		if rec, err := h.gateway.GetIdempotency(ctx, uid, key, timeNow()); err == nil {
			if res, err := h.sumSvc.Replay(ctx, rec.LogID); err == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, rec.Status, res)
				return
			}
		}
		// Fall through to regular processing when the replay cannot be served.
	}

	res, err := h.sumSvc.Summarize(ctx, services.SummaryInput{
		UserID:       uid,
		Template:     req.Template,
		CustomPrompt: req.CustomPrompt,
		Transcript:   req.Transcript,
	})
	if err != nil {
		switch err {
		case services.ErrEmptyTranscript:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "transcript is empty")
		case services.ErrTranscriptTooLong:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "transcript too long")
		case services.ErrEmptyCustomPrompt:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "custom prompt is empty")
		case services.ErrTemplateNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "template not found")
		case services.ErrSummaryFailed:
			fail(c, http.StatusBadGateway, ErrCodeSummaryFailed, "summary generation failed")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		}
		return
	}

	// Record the key → event mapping for future replays. Best effort: a
	// bookkeeping failure must not fail the request that already succeeded.
	if key, hasKey := middleware.GetIdempotencyKey(c); hasKey && res.Logged {
		_, _ = h.gateway.CreateIdempotency(ctx, uid, key, res.LogID, http.StatusOK, h.idempotencyTTL)
	}

	ok(c, http.StatusOK, res)
}

// ListSummaries godoc
// @ID          listSummaries
// @Summary     List recorded summarization attempts (paginated)
// @Description Returns a page of the audit history, newest first. Large text columns are omitted.
// @Tags        Summaries
// @Produce     json
//
// @Param       page       query  int  false "Page number (1-based)"  default(1)
// @Param       page_size  query  int  false "Page size (max 100)"    default(20)
//
// @Success     200  {object}  handlers.ListSummariesResponse
// @Failure     500  {object}  handlers.ErrorResponse "History unavailable"
// @Router      /summaries [get]
func (h *Handlers) ListSummaries(c *gin.Context) {
	page, pageSize := clampPagination(c)

	rows, total, err := h.sumSvc.History(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "summary history unavailable")
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListSummariesResponse{
		Summaries: rows,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
