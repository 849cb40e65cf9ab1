package repository

import (
	"strings"

	"github.com/LuthandoGubevu/tutorhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionFilter narrows the tutor queue listing. Zero values mean "no
// filter"; Search matches lesson title or student id, case-insensitively.
type SubmissionFilter struct {
	Subject string
	Status  models.SubmissionStatus
	Search  string
}

// SubmissionRepository is the store surface for submissions
type SubmissionRepository interface {
	Create(submission *models.Submission) error
	GetByID(id uuid.UUID) (*models.Submission, error)
	GetByStudentID(studentID uuid.UUID) ([]*models.Submission, error)
	List(filter SubmissionFilter) ([]*models.Submission, error)
	UpdateGrade(id uuid.UUID, fields map[string]interface{}) error
	SetSuggestionIfEmpty(id uuid.UUID, suggestion string) error
	ListWithoutSuggestion() ([]*models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *models.Submission) error {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	return r.db.Create(submission).Error
}

func (r *submissionRepository) GetByID(id uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) GetByStudentID(studentID uuid.UUID) ([]*models.Submission, error) {
	var submissions []*models.Submission
	err := r.db.Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) List(filter SubmissionFilter) ([]*models.Submission, error) {
	query := r.db.Model(&models.Submission{})
	if filter.Subject != "" {
		query = query.Where("lesson_subject = ?", filter.Subject)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(lesson_title) LIKE ? OR LOWER(student_id) LIKE ?", pattern, pattern)
	}

	var submissions []*models.Submission
	err := query.Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

// UpdateGrade applies a blind partial update. Last write wins; there is no
// compare-and-swap on purpose.
func (r *submissionRepository) UpdateGrade(id uuid.UUID, fields map[string]interface{}) error {
	return r.db.Model(&models.Submission{}).Where("id = ?", id).Updates(fields).Error
}

// SetSuggestionIfEmpty records the AI suggestion only if none has been
// stored yet. A suggestion is a point-in-time observation and is never
// replaced.
func (r *submissionRepository) SetSuggestionIfEmpty(id uuid.UUID, suggestion string) error {
	return r.db.Model(&models.Submission{}).
		Where("id = ? AND ai_feedback_suggestion IS NULL", id).
		Update("ai_feedback_suggestion", suggestion).Error
}

func (r *submissionRepository) ListWithoutSuggestion() ([]*models.Submission, error) {
	var submissions []*models.Submission
	err := r.db.Where("ai_feedback_suggestion IS NULL AND status = ?", models.SubmissionStatusPending).
		Order("submitted_at ASC").
		Find(&submissions).Error
	return submissions, err
}
