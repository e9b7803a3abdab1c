package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/SAP-F-2025/trait-assessment-service/internal/repositories"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type EvaluationPostgreSQL struct {
	db *gorm.DB
}

func NewEvaluationPostgreSQL(db *gorm.DB) repositories.EvaluationRepository {
	return &EvaluationPostgreSQL{db: db}
}

func (e *EvaluationPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return e.db
}

func (e *EvaluationPostgreSQL) Create(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error {
	if err := e.getDB(tx).WithContext(ctx).Create(evaluation).Error; err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (e *EvaluationPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := e.getDB(tx).WithContext(ctx).Where("id = ?", id).First(&evaluation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return &evaluation, nil
}

func (e *EvaluationPostgreSQL) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := e.getDB(tx).WithContext(ctx).Where("session_id = ?", sessionID).First(&evaluation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation for session: %w", err)
	}
	return &evaluation, nil
}

func (e *EvaluationPostgreSQL) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters repositories.EvaluationFilters) ([]*models.Evaluation, int64, error) {
	query := e.getDB(tx).WithContext(ctx).Model(&models.Evaluation{}).Where("student_id = ?", studentID)
	if filters.InstrumentID != "" {
		query = query.Where("instrument_id = ?", filters.InstrumentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count evaluations: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var evaluations []*models.Evaluation
	err := query.
		Order(orderClause(filters.SortOrder)).
		Limit(limit).
		Offset(filters.Offset).
		Find(&evaluations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list evaluations: %w", err)
	}

	return evaluations, total, nil
}

func orderClause(sortOrder string) string {
	if strings.EqualFold(sortOrder, "asc") {
		return "created_at ASC"
	}
	return "created_at DESC"
}

type repository struct {
	db          *gorm.DB
	evaluations repositories.EvaluationRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:          db,
		evaluations: NewEvaluationPostgreSQL(db),
	}
}

func (r *repository) Evaluation() repositories.EvaluationRepository {
	return r.evaluations
}

func (r *repository) DB() *gorm.DB {
	return r.db
}
