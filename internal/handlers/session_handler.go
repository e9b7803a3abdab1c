package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/trait-assessment-service/internal/services"
	"github.com/SAP-F-2025/trait-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// StartSession opens a session for a student on one instrument
// @Summary Start session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body services.StartSessionRequest true "Session data"
// @Success 201 {object} SuccessResponse{data=services.SessionResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalidPayload(c, err)
		return
	}
	if req.CounselorID == "" {
		req.CounselorID = h.extractUserID(c)
	}

	h.LogRequest(c, "Starting session", "instrument_id", req.InstrumentID, "student_id", req.StudentID)

	session, err := h.sessionService.Start(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Session started", session, "session_id", session.ID)
}

// GetSession returns the session's answers and progress
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// SetAnswer records, changes or clears one answer
// @Summary Set answer
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param answer body services.AnswerRequest true "Answer"
// @Success 200 {object} services.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/answers [put]
func (h *SessionHandler) SetAnswer(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalidPayload(c, err)
		return
	}

	session, err := h.sessionService.SetAnswer(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// EvaluateSession scores the session and stores the result
// @Summary Evaluate session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} SuccessResponse{data=services.EvaluationResponse}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/evaluate [post]
func (h *SessionHandler) EvaluateSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Evaluating session", "session_id", id)

	result, err := h.sessionService.Evaluate(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Session evaluated", result, "evaluation_id", result.ID)
}

// DiscardSession drops an in-progress session
// @Summary Discard session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DiscardSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.sessionService.Discard(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Session discarded", nil, "session_id", id)
}
