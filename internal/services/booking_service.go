package services

import (
	"fmt"
	"time"

	"github.com/LuthandoGubevu/tutorhub/internal/catalog"
	"github.com/LuthandoGubevu/tutorhub/internal/models"
	"github.com/LuthandoGubevu/tutorhub/internal/repository"

	"github.com/google/uuid"
)

// BookingService handles tutoring session reservations and lesson ratings.
// Both are single-create entities with no further lifecycle.
type BookingService interface {
	BookSession(studentID uuid.UUID, subject string, dateTime time.Time, durationMinutes int) (*models.Booking, error)
	GetByStudent(studentID uuid.UUID) ([]*models.Booking, error)
	ListUpcoming() ([]*models.Booking, error)
	Availability() []catalog.TutorAvailability
	SubmitLessonFeedback(studentID uuid.UUID, lessonID string, rating int, comments string) (*models.LessonFeedback, error)
	GetLessonFeedback(lessonID string) ([]*models.LessonFeedback, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	feedbackRepo repository.LessonFeedbackRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo repository.BookingRepository, feedbackRepo repository.LessonFeedbackRepository) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		feedbackRepo: feedbackRepo,
	}
}

func (s *bookingService) BookSession(studentID uuid.UUID, subject string, dateTime time.Time, durationMinutes int) (*models.Booking, error) {
	if subject != catalog.SubjectMathematics && subject != catalog.SubjectPhysics && subject != "General" {
		return nil, NewValidationError("Subject must be Mathematics, Physics or General.")
	}
	if dateTime.Before(time.Now()) {
		return nil, NewValidationError("Session time must be in the future.")
	}
	if durationMinutes <= 0 {
		durationMinutes = 30
	}

	booking := &models.Booking{
		ID:              uuid.New(),
		StudentID:       studentID,
		Subject:         subject,
		DateTime:        dateTime,
		DurationMinutes: durationMinutes,
		GoogleMeetLink:  fmt.Sprintf("https://meet.google.com/lookup/%s", uuid.New().String()[:8]),
		Status:          models.BookingStatusConfirmed,
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	return booking, nil
}

func (s *bookingService) GetByStudent(studentID uuid.UUID) ([]*models.Booking, error) {
	return s.bookingRepo.GetByStudentID(studentID)
}

func (s *bookingService) ListUpcoming() ([]*models.Booking, error) {
	return s.bookingRepo.ListUpcoming()
}

func (s *bookingService) Availability() []catalog.TutorAvailability {
	return catalog.TutorAvailabilitySlots(time.Now())
}

func (s *bookingService) SubmitLessonFeedback(studentID uuid.UUID, lessonID string, rating int, comments string) (*models.LessonFeedback, error) {
	if rating < 1 || rating > 5 {
		return nil, NewValidationError("Rating must be between 1 and 5.")
	}

	feedback := &models.LessonFeedback{
		ID:        uuid.New(),
		LessonID:  lessonID,
		StudentID: studentID,
		Rating:    rating,
		Comments:  comments,
	}

	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, fmt.Errorf("failed to save lesson feedback: %w", err)
	}

	return feedback, nil
}

func (s *bookingService) GetLessonFeedback(lessonID string) ([]*models.LessonFeedback, error) {
	return s.feedbackRepo.GetByLessonID(lessonID)
}
