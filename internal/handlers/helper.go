package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/trait-assessment-service/internal/repositories"
	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// parseEvaluationFilters reads page/size pagination plus optional
// instrument_id and sort_order query parameters.
func parseEvaluationFilters(c *gin.Context) repositories.EvaluationFilters {
	page := parseIntQuery(c, "page", 1)
	size := parseIntQuery(c, "size", 20)
	if page < 1 {
		page = 1
	}

	return repositories.EvaluationFilters{
		InstrumentID: c.Query("instrument_id"),
		Limit:        size,
		Offset:       (page - 1) * size,
		SortOrder:    c.Query("sort_order"),
	}
}
