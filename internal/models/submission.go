package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus defines the grading state of a submission
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "Pending"
	SubmissionStatusReviewed SubmissionStatus = "Reviewed"
)

// Submission is one student's answer to one lesson question. Answer and
// reasoning are immutable once written; status only moves Pending → Reviewed
// through a tutor grade, and the AI suggestion, once set, is never replaced.
type Submission struct {
	ID                   uuid.UUID        `json:"id" gorm:"type:text;primary_key"`
	StudentID            uuid.UUID        `json:"student_id" gorm:"type:text;index;not null"`
	LessonID             string           `json:"lesson_id" gorm:"not null"`
	LessonSubject        string           `json:"lesson_subject" gorm:"not null"`
	LessonTitle          string           `json:"lesson_title"`
	StudentAnswer        string           `json:"student_answer" gorm:"not null"`
	StudentReasoning     string           `json:"student_reasoning" gorm:"not null"`
	SubmittedAt          time.Time        `json:"submitted_at" gorm:"index"`
	AIFeedbackSuggestion *string          `json:"ai_feedback_suggestion,omitempty"`
	TutorFeedback        *string          `json:"tutor_feedback,omitempty"`
	Status               SubmissionStatus `json:"status" gorm:"default:'Pending'"`
	Score                *float64         `json:"score,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}
