package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/LuthandoGubevu/tutorhub/internal/catalog"
	"github.com/LuthandoGubevu/tutorhub/internal/models"
	"github.com/LuthandoGubevu/tutorhub/internal/repository"
	"github.com/LuthandoGubevu/tutorhub/internal/watch"
	"github.com/LuthandoGubevu/tutorhub/pkg/advisor"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TutorStats summarizes the submission queue for the tutor dashboard
type TutorStats struct {
	TotalSubmissions    int      `json:"total_submissions"`
	PendingReviews      int      `json:"pending_reviews"`
	ReviewedSubmissions int      `json:"reviewed_submissions"`
	ActiveStudents      int      `json:"active_students"`
	AvgMathScore        *float64 `json:"avg_math_score"`
	AvgPhysicsScore     *float64 `json:"avg_physics_score"`
}

// SubmissionService owns the submission lifecycle: creation with a
// best-effort AI suggestion, and tutor grading. It is the only write path to
// the submission store.
type SubmissionService interface {
	Create(ctx context.Context, studentID uuid.UUID, subject, lessonID, answer, reasoning string) (*models.Submission, error)
	Grade(submissionID uuid.UUID, tutorFeedback string, score *float64) (*models.Submission, error)
	GetByStudent(studentID uuid.UUID) ([]*models.Submission, error)
	List(filter repository.SubmissionFilter) ([]*models.Submission, error)
	GetDetail(viewer *models.Identity, submissionID uuid.UUID) (*models.Submission, catalog.Lesson, error)
	Stats() (*TutorStats, error)
	BackfillSuggestions(ctx context.Context) (int, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	advisor        advisor.Advisor
	hub            *watch.Hub
	advisorTimeout time.Duration
}

// NewSubmissionService creates a new submission service. advisorClient may be
// nil, in which case no suggestions are requested.
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	advisorClient advisor.Advisor,
	hub *watch.Hub,
	advisorTimeout time.Duration,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		advisor:        advisorClient,
		hub:            hub,
		advisorTimeout: advisorTimeout,
	}
}

// Create validates and persists a new Pending submission. The advisor call is
// best-effort: a failure or timeout leaves the suggestion unset and never
// fails the submission. Answer and reasoning are immutable after this point.
func (s *submissionService) Create(ctx context.Context, studentID uuid.UUID, subject, lessonID, answer, reasoning string) (*models.Submission, error) {
	answer = strings.TrimSpace(answer)
	reasoning = strings.TrimSpace(reasoning)
	if answer == "" {
		return nil, NewValidationError("Answer cannot be empty.")
	}
	if reasoning == "" {
		return nil, NewValidationError("Reasoning cannot be empty.")
	}

	lesson, ok := catalog.GetLessonByID(subject, lessonID)
	if !ok {
		return nil, NewValidationError("Lesson not found.")
	}

	submittedAt := time.Now()
	suggestion := s.requestSuggestion(ctx, lesson, studentID, answer, reasoning, submittedAt)

	submission := &models.Submission{
		ID:                   uuid.New(),
		StudentID:            studentID,
		LessonID:             lesson.ID,
		LessonSubject:        lesson.Subject,
		LessonTitle:          lesson.Title,
		StudentAnswer:        answer,
		StudentReasoning:     reasoning,
		SubmittedAt:          submittedAt,
		AIFeedbackSuggestion: suggestion,
		Status:               models.SubmissionStatusPending,
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.hub.Publish(watch.EventCreated, submission)

	return submission, nil
}

// Grade merges tutor feedback, the Reviewed status and an optional score onto
// the record. This is the only path that changes status after creation. The
// write is a blind last-write-wins merge and grading is repeatable.
func (s *submissionService) Grade(submissionID uuid.UUID, tutorFeedback string, score *float64) (*models.Submission, error) {
	if score != nil && (*score < 0 || *score > 100) {
		return nil, NewValidationError("Score must be a number between 0 and 100.")
	}

	if _, err := s.submissionRepo.GetByID(submissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}

	fields := map[string]interface{}{
		"tutor_feedback": tutorFeedback,
		"status":         models.SubmissionStatusReviewed,
	}
	if score != nil {
		fields["score"] = *score
	}

	if err := s.submissionRepo.UpdateGrade(submissionID, fields); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	updated, err := s.submissionRepo.GetByID(submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload submission: %w", err)
	}

	s.hub.Publish(watch.EventUpdated, updated)

	return updated, nil
}

func (s *submissionService) GetByStudent(studentID uuid.UUID) ([]*models.Submission, error) {
	return s.submissionRepo.GetByStudentID(studentID)
}

func (s *submissionService) List(filter repository.SubmissionFilter) ([]*models.Submission, error) {
	return s.submissionRepo.List(filter)
}

// GetDetail loads one submission for a viewer. A student viewer only ever
// sees their own records; anyone else's resolve to ErrNotFound so a crafted
// link leaks nothing.
func (s *submissionService) GetDetail(viewer *models.Identity, submissionID uuid.UUID) (*models.Submission, catalog.Lesson, error) {
	submission, err := s.submissionRepo.GetByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.Lesson{}, ErrNotFound
		}
		return nil, catalog.Lesson{}, fmt.Errorf("failed to load submission: %w", err)
	}

	if viewer == nil {
		return nil, catalog.Lesson{}, ErrNotFound
	}
	if !viewer.IsTutor() && submission.StudentID != viewer.ID {
		return nil, catalog.Lesson{}, ErrNotFound
	}

	lesson, ok := catalog.GetLessonByID(submission.LessonSubject, submission.LessonID)
	if !ok {
		log.Printf("lesson %s/%s not found for submission %s",
			submission.LessonSubject, submission.LessonID, submission.ID)
		return nil, catalog.Lesson{}, ErrNotFound
	}

	return submission, lesson, nil
}

// Stats computes the tutor dashboard metrics
func (s *submissionService) Stats() (*TutorStats, error) {
	submissions, err := s.submissionRepo.List(repository.SubmissionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	stats := &TutorStats{TotalSubmissions: len(submissions)}
	students := make(map[uuid.UUID]struct{})
	var mathSum, physSum float64
	var mathCount, physCount int

	for _, sub := range submissions {
		students[sub.StudentID] = struct{}{}
		switch sub.Status {
		case models.SubmissionStatusPending:
			stats.PendingReviews++
		case models.SubmissionStatusReviewed:
			stats.ReviewedSubmissions++
		}
		if sub.Score != nil {
			switch sub.LessonSubject {
			case catalog.SubjectMathematics:
				mathSum += *sub.Score
				mathCount++
			case catalog.SubjectPhysics:
				physSum += *sub.Score
				physCount++
			}
		}
	}

	stats.ActiveStudents = len(students)
	if mathCount > 0 {
		avg := mathSum / float64(mathCount)
		stats.AvgMathScore = &avg
	}
	if physCount > 0 {
		avg := physSum / float64(physCount)
		stats.AvgPhysicsScore = &avg
	}

	return stats, nil
}

// BackfillSuggestions asks the advisor for suggestions on pending submissions
// that have none, filling only the empty field. Returns how many were filled.
func (s *submissionService) BackfillSuggestions(ctx context.Context) (int, error) {
	if s.advisor == nil {
		return 0, nil
	}

	pending, err := s.submissionRepo.ListWithoutSuggestion()
	if err != nil {
		return 0, fmt.Errorf("failed to list submissions without suggestion: %w", err)
	}

	filled := 0
	for _, sub := range pending {
		lesson, ok := catalog.GetLessonByID(sub.LessonSubject, sub.LessonID)
		if !ok {
			continue
		}
		suggestion := s.requestSuggestion(ctx, lesson, sub.StudentID, sub.StudentAnswer, sub.StudentReasoning, sub.SubmittedAt)
		if suggestion == nil {
			continue
		}
		if err := s.submissionRepo.SetSuggestionIfEmpty(sub.ID, *suggestion); err != nil {
			log.Printf("failed to backfill suggestion for submission %s: %v", sub.ID, err)
			continue
		}
		filled++
	}

	return filled, nil
}

func (s *submissionService) requestSuggestion(ctx context.Context, lesson catalog.Lesson, studentID uuid.UUID, answer, reasoning string, submittedAt time.Time) *string {
	if s.advisor == nil {
		return nil
	}

	advisorCtx, cancel := context.WithTimeout(ctx, s.advisorTimeout)
	defer cancel()

	out, err := s.advisor.Suggest(advisorCtx, advisor.SuggestInput{
		LessonContent:    lesson.RichTextContent,
		StudentAnswer:    answer,
		StudentReasoning: reasoning,
		LessonID:         lesson.ID,
		StudentID:        studentID.String(),
		Timestamp:        submittedAt.Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("advisor suggestion failed for lesson %s: %v", lesson.ID, err)
		return nil
	}

	return &out.FeedbackSuggestion
}
