package repository

import (
	"github.com/LuthandoGubevu/tutorhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonFeedbackRepository is the store surface for lesson ratings
type LessonFeedbackRepository interface {
	Create(feedback *models.LessonFeedback) error
	GetByLessonID(lessonID string) ([]*models.LessonFeedback, error)
	GetByStudentID(studentID uuid.UUID) ([]*models.LessonFeedback, error)
}

type lessonFeedbackRepository struct {
	db *gorm.DB
}

// NewLessonFeedbackRepository creates a new lesson feedback repository
func NewLessonFeedbackRepository(db *gorm.DB) LessonFeedbackRepository {
	return &lessonFeedbackRepository{db: db}
}

func (r *lessonFeedbackRepository) Create(feedback *models.LessonFeedback) error {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	return r.db.Create(feedback).Error
}

func (r *lessonFeedbackRepository) GetByLessonID(lessonID string) ([]*models.LessonFeedback, error) {
	var feedbacks []*models.LessonFeedback
	err := r.db.Where("lesson_id = ?", lessonID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}

func (r *lessonFeedbackRepository) GetByStudentID(studentID uuid.UUID) ([]*models.LessonFeedback, error) {
	var feedbacks []*models.LessonFeedback
	err := r.db.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}
