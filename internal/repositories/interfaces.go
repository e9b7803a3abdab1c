package repositories

import (
	"context"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"gorm.io/gorm"
)

type EvaluationFilters struct {
	InstrumentID string `json:"instrument_id" form:"instrument_id"`
	Limit        int    `json:"limit" form:"limit"`
	Offset       int    `json:"offset" form:"offset"`
	SortOrder    string `json:"sort_order" form:"sort_order"` // "asc", "desc"
}

// EvaluationRepository persists scored results. A nil tx runs against the
// repository's own connection.
type EvaluationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error
	// GetByID returns (nil, nil) when no evaluation has the given id.
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Evaluation, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Evaluation, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters EvaluationFilters) ([]*models.Evaluation, int64, error)
}

// Repository groups every repository the services depend on.
type Repository interface {
	Evaluation() EvaluationRepository
	DB() *gorm.DB
}
