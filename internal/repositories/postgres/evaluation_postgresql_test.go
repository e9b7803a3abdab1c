package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/SAP-F-2025/trait-assessment-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "created_at ASC", orderClause("asc"))
	assert.Equal(t, "created_at ASC", orderClause("ASC"))
	assert.Equal(t, "created_at DESC", orderClause("desc"))
	assert.Equal(t, "created_at DESC", orderClause(""))
}

func TestGetDB_PrefersTransaction(t *testing.T) {
	db, _ := newMockDB(t)
	repo := &EvaluationPostgreSQL{db: db}

	assert.Same(t, db, repo.getDB(nil))

	tx := db.Session(&gorm.Session{})
	assert.Same(t, tx, repo.getDB(tx))
}

func TestEvaluationPostgreSQL_CreateStoresInvalidFlag(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluationPostgreSQL(db)

	mock.ExpectExec(`INSERT INTO "trait_evaluations" \(.*"valid".*\) VALUES`).
		WithArgs(
			"eval-1", sqlmock.AnyArg(), "stu-1", "counselor-1", "vak",
			50, "kinesthetic", 2, 12,
			false,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), nil, &models.Evaluation{
		ID:                "eval-1",
		StudentID:         "stu-1",
		CounselorID:       "counselor-1",
		InstrumentID:      "vak",
		OverallScore:      50,
		DominantDimension: "kinesthetic",
		AnsweredCount:     2,
		QuestionCount:     12,
		Valid:             false,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationPostgreSQL_CreateWrapsErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluationPostgreSQL(db)

	mock.ExpectExec(`INSERT INTO "trait_evaluations"`).WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), nil, &models.Evaluation{ID: "eval-1", StudentID: "stu-1", InstrumentID: "vak"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create evaluation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationPostgreSQL_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluationPostgreSQL(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "trait_evaluations" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	missing, err := repo.GetByID(ctx, nil, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	created := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "trait_evaluations" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "instrument_id", "valid", "created_at"}).
			AddRow("eval-1", "stu-1", "vak", false, created))

	found, err := repo.GetByID(ctx, nil, "eval-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "eval-1", found.ID)
	assert.False(t, found.Valid)
	assert.True(t, created.Equal(found.CreatedAt))

	mock.ExpectQuery(`SELECT \* FROM "trait_evaluations" WHERE session_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	bySession, err := repo.GetBySessionID(ctx, nil, "session-1")
	require.NoError(t, err)
	assert.Nil(t, bySession)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationPostgreSQL_ListByStudent(t *testing.T) {
	tests := []struct {
		name      string
		filters   repositories.EvaluationFilters
		countSQL  string
		countArgs []driver.Value
		listSQL   string
		listArgs  []driver.Value
	}{
		{
			name:      "defaults",
			filters:   repositories.EvaluationFilters{},
			countSQL:  `SELECT count\(\*\) FROM "trait_evaluations" WHERE student_id = \$1`,
			countArgs: []driver.Value{"stu-1"},
			listSQL:   `WHERE student_id = \$1 ORDER BY created_at DESC LIMIT \$2$`,
			listArgs:  []driver.Value{"stu-1", 20},
		},
		{
			name:      "clamped limit with offset and instrument",
			filters:   repositories.EvaluationFilters{InstrumentID: "vak", Limit: 500, Offset: 40, SortOrder: "asc"},
			countSQL:  `SELECT count\(\*\) FROM "trait_evaluations" WHERE student_id = \$1 AND instrument_id = \$2`,
			countArgs: []driver.Value{"stu-1", "vak"},
			listSQL:   `WHERE student_id = \$1 AND instrument_id = \$2 ORDER BY created_at ASC LIMIT \$3 OFFSET \$4`,
			listArgs:  []driver.Value{"stu-1", "vak", 100, 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewEvaluationPostgreSQL(db)

			mock.ExpectQuery(tt.countSQL).
				WithArgs(tt.countArgs...).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(250))
			mock.ExpectQuery(tt.listSQL).
				WithArgs(tt.listArgs...).
				WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "valid"}).
					AddRow("eval-1", "stu-1", true).
					AddRow("eval-2", "stu-1", false))

			evaluations, total, err := repo.ListByStudent(context.Background(), nil, "stu-1", tt.filters)
			require.NoError(t, err)
			assert.Equal(t, int64(250), total)
			require.Len(t, evaluations, 2)
			assert.Equal(t, "eval-2", evaluations[1].ID)
			assert.False(t, evaluations[1].Valid)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEvaluationPostgreSQL_ListByStudentCountFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluationPostgreSQL(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "trait_evaluations"`).WillReturnError(errors.New("timeout"))

	_, _, err := repo.ListByStudent(context.Background(), nil, "stu-1", repositories.EvaluationFilters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count evaluations")
	assert.NoError(t, mock.ExpectationsWereMet())
}
