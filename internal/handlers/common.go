package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/SAP-F-2025/trait-assessment-service/internal/errors"
	"github.com/SAP-F-2025/trait-assessment-service/internal/services"
	"github.com/SAP-F-2025/trait-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler provides common logging and error mapping for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

func (h *BaseHandler) contextFields(c *gin.Context, additionalFields []interface{}) []interface{} {
	fields := []interface{}{
		"request_id", c.GetString("request_id"),
		"user_id", h.extractUserID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	return append(fields, additionalFields...)
}

// LogRequest logs an incoming request together with handler-specific fields
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := h.contextFields(c, additionalFields)
	fields = append(fields, "remote_addr", c.ClientIP())
	h.logger.Info(message, fields...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.logger.LogError(err, message, h.contextFields(c, additionalFields)...)
}

func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Info(message, h.contextFields(c, additionalFields)...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Warn(message, h.contextFields(c, additionalFields)...)
}

func (h *BaseHandler) extractUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, code, message string, err error, details ...interface{}) {
	resp := ErrorResponse{
		Message: message,
		Code:    code,
	}
	if len(details) > 0 {
		resp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.JSON(statusCode, resp)
}

// RespondWithSuccess sends a consistent success response and logs it
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}, additionalFields ...interface{}) {
	fields := append([]interface{}{"status_code", statusCode}, additionalFields...)
	h.LogInfo(c, message, fields...)

	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

func (h *BaseHandler) respondInvalidPayload(c *gin.Context, err error) {
	h.RespondWithError(c, http.StatusBadRequest, "invalid_payload", "Invalid request payload", err, err.Error())
}

// handleServiceError maps service and scoring errors onto HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "validation_failed", "Validation failed", err, validationErrors)
		return
	}

	var selectionErr *apperrors.InvalidSelectionError
	if errors.As(err, &selectionErr) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, "invalid_selection", selectionErr.Error(), err, selectionErr)
		return
	}

	var rankErr *apperrors.InvalidRankAssignmentError
	if errors.As(err, &rankErr) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, "invalid_rank_assignment", rankErr.Error(), err, rankErr)
		return
	}

	var incompleteErr *apperrors.IncompleteResponseSetError
	if errors.As(err, &incompleteErr) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, "incomplete_response_set", "Response set is incomplete", err,
			map[string]interface{}{"missing": incompleteErr.Missing})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, businessRuleError.Rule, businessRuleError.Message, err, businessRuleError.Context)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrInstrumentNotFound):
		h.RespondWithError(c, http.StatusNotFound, "instrument_not_found", "Instrument not found", err)
	case errors.Is(err, services.ErrSessionNotFound):
		h.RespondWithError(c, http.StatusNotFound, "session_not_found", "Session not found", err)
	case errors.Is(err, services.ErrResultNotFound):
		h.RespondWithError(c, http.StatusNotFound, "result_not_found", "Evaluation result not found", err)
	case errors.Is(err, services.ErrSessionAlreadyEvaluated):
		h.RespondWithError(c, http.StatusConflict, "session_already_evaluated", "Session has already been evaluated", err)
	case errors.Is(err, services.ErrSessionConflict):
		h.RespondWithError(c, http.StatusConflict, "session_conflict", "Session was modified concurrently, retry the request", err)
	case services.IsConfiguration(err):
		h.RespondWithError(c, http.StatusInternalServerError, "configuration_error", "Instrument configuration error", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "internal_error", "Internal server error", err)
	}
}
