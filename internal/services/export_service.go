package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/SAP-F-2025/trait-assessment-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	exportPageSize = 100
	dateLayout     = "2006-01-02 15:04"
)

type ExportService interface {
	// ExportStudentResults renders every stored evaluation of a student as an
	// .xlsx workbook.
	ExportStudentResults(ctx context.Context, studentID string) ([]byte, error)
}

type exportService struct {
	repo     repositories.Repository
	opLogger *ServiceLogger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:     repo,
		opLogger: NewServiceLogger(logger, "export"),
	}
}

func (s *exportService) ExportStudentResults(ctx context.Context, studentID string) (data []byte, err error) {
	op := s.opLogger.WithOperation(ctx, "export_student_results", "")
	defer func() { op.LogResult(studentID, "student", err) }()

	if studentID == "" {
		return nil, ValidationErrors{*NewValidationError("student_id", "is required", studentID)}
	}

	evaluations, err := s.allEvaluations(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return buildWorkbook(evaluations)
}

func (s *exportService) allEvaluations(ctx context.Context, studentID string) ([]*models.Evaluation, error) {
	var all []*models.Evaluation
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.repo.Evaluation().ListByStudent(ctx, nil, studentID, repositories.EvaluationFilters{
			Limit:     exportPageSize,
			Offset:    offset,
			SortOrder: "asc",
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}

func buildWorkbook(evaluations []*models.Evaluation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	summaryHeaders := []interface{}{"Evaluation ID", "Date", "Instrument", "Title", "Dominant", "Overall Score", "Valid"}
	if err := writeRow(f, summarySheet, 1, summaryHeaders); err != nil {
		return nil, err
	}

	byInstrument := make(map[string][]*models.Evaluation)
	for i, e := range evaluations {
		result := e.Result.Data()
		row := []interface{}{
			e.ID,
			e.CreatedAt.Format(dateLayout),
			e.InstrumentID,
			result.InstrumentTitle,
			result.DominantDisplayName,
			e.OverallScore,
			e.Valid,
		}
		if err := writeRow(f, summarySheet, i+2, row); err != nil {
			return nil, err
		}
		byInstrument[e.InstrumentID] = append(byInstrument[e.InstrumentID], e)
	}

	instrumentIDs := make([]string, 0, len(byInstrument))
	for id := range byInstrument {
		instrumentIDs = append(instrumentIDs, id)
	}
	sort.Strings(instrumentIDs)

	for _, id := range instrumentIDs {
		sheet := sheetName(id)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
		}

		headers := []interface{}{"Evaluation ID", "Date", "Dimension", "Name", "Raw", "Percentage", "Band"}
		if err := writeRow(f, sheet, 1, headers); err != nil {
			return nil, err
		}

		row := 2
		for _, e := range byInstrument[id] {
			for _, score := range e.Result.Data().Scores {
				values := []interface{}{
					e.ID,
					e.CreatedAt.Format(dateLayout),
					score.Dimension,
					score.DisplayName,
					score.Raw,
					score.Percentage,
					score.BandLabel,
				}
				if err := writeRow(f, sheet, row, values); err != nil {
					return nil, err
				}
				row++
			}
		}
	}

	index, err := f.GetSheetIndex(summarySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to select Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

// sheetName fits an instrument id into Excel's 31 character sheet name limit.
func sheetName(instrumentID string) string {
	const maxLen = 31
	if len(instrumentID) > maxLen {
		return instrumentID[:maxLen]
	}
	return instrumentID
}
