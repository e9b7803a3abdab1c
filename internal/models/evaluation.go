package models

import (
	"time"

	"gorm.io/datatypes"
)

// Evaluation is the persisted record of one scored response set.
type Evaluation struct {
	ID                string                               `json:"id" gorm:"primaryKey;size:36"`
	SessionID         *string                              `json:"session_id,omitempty" gorm:"size:36;uniqueIndex"`
	StudentID         string                               `json:"student_id" gorm:"size:64;not null;index"`
	CounselorID       string                               `json:"counselor_id" gorm:"size:64;index"`
	InstrumentID      string                               `json:"instrument_id" gorm:"size:64;not null;index"`
	OverallScore      int                                  `json:"overall_score"`
	DominantDimension string                               `json:"dominant_dimension" gorm:"size:64"`
	AnsweredCount     int                                  `json:"answered_count"`
	QuestionCount     int                                  `json:"question_count"`
	Valid             bool                                 `json:"valid" gorm:"not null"`
	Result            datatypes.JSONType[EvaluationResult] `json:"result"`
	Answers           datatypes.JSON                       `json:"answers,omitempty" gorm:"type:jsonb"`
	CreatedAt         time.Time                            `json:"created_at" gorm:"index"`
}

func (Evaluation) TableName() string {
	return "trait_evaluations"
}
