package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LuthandoGubevu/tutorhub/internal/catalog"
	"github.com/LuthandoGubevu/tutorhub/internal/models"
	"github.com/LuthandoGubevu/tutorhub/internal/repository"
	"github.com/LuthandoGubevu/tutorhub/internal/watch"
	"github.com/LuthandoGubevu/tutorhub/pkg/advisor"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmissionService(repo *fakeSubmissionRepo, adv advisor.Advisor) SubmissionService {
	return NewSubmissionService(repo, adv, watch.NewHub(), 100*time.Millisecond)
}

func TestCreateRejectsEmptyFields(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)
	studentID := uuid.New()

	tests := []struct {
		name      string
		answer    string
		reasoning string
		wantMsg   string
	}{
		{"empty answer", "", "some reasoning", "Answer cannot be empty."},
		{"whitespace answer", "   \t", "some reasoning", "Answer cannot be empty."},
		{"empty reasoning", "x = 3", "", "Reasoning cannot be empty."},
		{"whitespace reasoning", "x = 3", "  \n ", "Reasoning cannot be empty."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), studentID, catalog.SubjectMathematics, "math-1", tt.answer, tt.reasoning)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantMsg, validationErr.Error())
		})
	}

	assert.Equal(t, 0, repo.writes, "rejected input must never reach the store")
}

func TestCreateRejectsUnknownLesson(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	_, err := svc.Create(context.Background(), uuid.New(), catalog.SubjectMathematics, "math-999", "x = 3", "solved for x")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Lesson not found.", validationErr.Error())

	_, err = svc.Create(context.Background(), uuid.New(), "chemistry", "math-1", "x = 3", "solved for x")
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, repo.writes)
}

func TestCreatePersistsPendingWithSuggestion(t *testing.T) {
	repo := newFakeSubmissionRepo()
	adv := &fakeAdvisor{suggest: func(ctx context.Context, input advisor.SuggestInput) (*advisor.SuggestOutput, error) {
		assert.Equal(t, "math-1", input.LessonID)
		assert.Equal(t, "x = 3", input.StudentAnswer)
		return &advisor.SuggestOutput{FeedbackSuggestion: "Check sign handling"}, nil
	}}
	svc := newSubmissionService(repo, adv)
	studentID := uuid.New()

	submission, err := svc.Create(context.Background(), studentID, catalog.SubjectMathematics, "math-1", "x = 3", "moved terms across")
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusPending, submission.Status)
	assert.Equal(t, studentID, submission.StudentID)
	assert.Equal(t, "math-1", submission.LessonID)
	assert.Equal(t, catalog.SubjectMathematics, submission.LessonSubject)
	require.NotNil(t, submission.AIFeedbackSuggestion)
	assert.Equal(t, "Check sign handling", *submission.AIFeedbackSuggestion)
	assert.Nil(t, submission.TutorFeedback)
	assert.Nil(t, submission.Score)
	assert.Equal(t, 1, adv.calls)
	assert.Equal(t, 1, repo.writes)
}

func TestCreateSurvivesAdvisorFailure(t *testing.T) {
	repo := newFakeSubmissionRepo()
	adv := &fakeAdvisor{suggest: func(ctx context.Context, input advisor.SuggestInput) (*advisor.SuggestOutput, error) {
		return nil, errors.New("advisor unavailable")
	}}
	svc := newSubmissionService(repo, adv)

	submission, err := svc.Create(context.Background(), uuid.New(), catalog.SubjectPhysics, "phys-1", "F = ma", "applied the second law")
	require.NoError(t, err)
	assert.Nil(t, submission.AIFeedbackSuggestion)
	assert.Equal(t, models.SubmissionStatusPending, submission.Status)
}

func TestCreateSurvivesAdvisorTimeout(t *testing.T) {
	repo := newFakeSubmissionRepo()
	adv := &fakeAdvisor{suggest: func(ctx context.Context, input advisor.SuggestInput) (*advisor.SuggestOutput, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	svc := NewSubmissionService(repo, adv, watch.NewHub(), 10*time.Millisecond)

	start := time.Now()
	submission, err := svc.Create(context.Background(), uuid.New(), catalog.SubjectMathematics, "math-2", "x = 4", "substituted back")
	require.NoError(t, err)
	assert.Nil(t, submission.AIFeedbackSuggestion)
	assert.Less(t, time.Since(start), time.Second, "a slow advisor must not block submission")
}

func TestCreateWithoutAdvisor(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	submission, err := svc.Create(context.Background(), uuid.New(), catalog.SubjectMathematics, "math-1", "x = 3", "worked it out")
	require.NoError(t, err)
	assert.Nil(t, submission.AIFeedbackSuggestion)
}

func TestGradeRejectsOutOfRangeScore(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	for _, bad := range []float64{-1, 100.5, 200} {
		score := bad
		_, err := svc.Grade(uuid.New(), "feedback", &score)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "score %v", bad)
		assert.Equal(t, "Score must be a number between 0 and 100.", validationErr.Error())
	}
	assert.Equal(t, 0, repo.writes, "a rejected score must not touch the store")
}

func TestGradeUnknownSubmission(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	_, err := svc.Grade(uuid.New(), "feedback", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGradeMarksReviewed(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	created, err := svc.Create(context.Background(), uuid.New(), catalog.SubjectMathematics, "math-1", "x = 3", "isolated x")
	require.NoError(t, err)

	score := 92.0
	graded, err := svc.Grade(created.ID, "Good work", &score)
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusReviewed, graded.Status)
	require.NotNil(t, graded.TutorFeedback)
	assert.Equal(t, "Good work", *graded.TutorFeedback)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 92.0, *graded.Score)
	// Student-authored fields are untouched.
	assert.Equal(t, "x = 3", graded.StudentAnswer)
	assert.Equal(t, "isolated x", graded.StudentReasoning)
}

func TestGradeIsRepeatable(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	created, err := svc.Create(context.Background(), uuid.New(), catalog.SubjectPhysics, "phys-2", "v = 20 m/s", "used kinematics")
	require.NoError(t, err)

	first := 70.0
	_, err = svc.Grade(created.ID, "Close, recheck units", &first)
	require.NoError(t, err)

	second := 85.0
	graded, err := svc.Grade(created.ID, "Better after the fix", &second)
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusReviewed, graded.Status)
	assert.Equal(t, "Better after the fix", *graded.TutorFeedback)
	assert.Equal(t, 85.0, *graded.Score)
}

func TestGradeDuplicateWritesConverge(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	created, err := svc.Create(context.Background(), uuid.New(), catalog.SubjectMathematics, "math-1", "x = 3", "isolated x")
	require.NoError(t, err)
	require.Equal(t, 1, repo.writes)

	score := 92.0
	first, err := svc.Grade(created.ID, "Good work", &score)
	require.NoError(t, err)
	second, err := svc.Grade(created.ID, "Good work", &score)
	require.NoError(t, err)

	// Both writes land, yet the record is observably unchanged.
	assert.Equal(t, 3, repo.writes)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, *first.TutorFeedback, *second.TutorFeedback)
	assert.Equal(t, *first.Score, *second.Score)
}

func TestSubmitThenGradeFlow(t *testing.T) {
	repo := newFakeSubmissionRepo()
	adv := &fakeAdvisor{suggest: func(ctx context.Context, input advisor.SuggestInput) (*advisor.SuggestOutput, error) {
		return &advisor.SuggestOutput{FeedbackSuggestion: "Check sign handling"}, nil
	}}
	svc := newSubmissionService(repo, adv)
	studentID := uuid.New()

	created, err := svc.Create(context.Background(), studentID, catalog.SubjectMathematics, "math-1",
		"x=3", "isolated x by subtracting 5 then dividing by 2")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPending, created.Status)
	require.NotNil(t, created.AIFeedbackSuggestion)
	assert.Equal(t, "Check sign handling", *created.AIFeedbackSuggestion)
	assert.Nil(t, created.TutorFeedback)

	score := 92.0
	graded, err := svc.Grade(created.ID, "Good work", &score)
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusReviewed, graded.Status)
	assert.Equal(t, 92.0, *graded.Score)
	assert.Equal(t, "Good work", *graded.TutorFeedback)
	assert.Equal(t, "x=3", graded.StudentAnswer)
	require.NotNil(t, graded.AIFeedbackSuggestion)
	assert.Equal(t, "Check sign handling", *graded.AIFeedbackSuggestion)
}

func TestGradeWithoutScoreKeepsStoredScore(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	created, err := svc.Create(context.Background(), uuid.New(), catalog.SubjectMathematics, "math-3", "x = 5", "factored")
	require.NoError(t, err)

	score := 60.0
	_, err = svc.Grade(created.ID, "Initial pass", &score)
	require.NoError(t, err)

	graded, err := svc.Grade(created.ID, "Reworded feedback", nil)
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusReviewed, graded.Status, "status never reverts to pending")
	assert.Equal(t, "Reworded feedback", *graded.TutorFeedback)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 60.0, *graded.Score)
}

func TestGetDetailOwnership(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	owner := uuid.New()
	created, err := svc.Create(context.Background(), owner, catalog.SubjectMathematics, "math-1", "x = 3", "isolated x")
	require.NoError(t, err)

	ownerIdentity := &models.Identity{ID: owner, Role: models.RoleStudent}
	otherStudent := &models.Identity{ID: uuid.New(), Role: models.RoleStudent}
	tutor := &models.Identity{ID: uuid.New(), Role: models.RoleTutor}

	submission, lesson, err := svc.GetDetail(ownerIdentity, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, submission.ID)
	assert.Equal(t, "math-1", lesson.ID)

	// Another student's crafted link looks exactly like a missing record.
	_, _, err = svc.GetDetail(otherStudent, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.GetDetail(nil, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.GetDetail(tutor, created.ID)
	assert.NoError(t, err)

	_, _, err = svc.GetDetail(tutor, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	studentA := uuid.New()
	studentB := uuid.New()

	mathSub, err := svc.Create(context.Background(), studentA, catalog.SubjectMathematics, "math-1", "x = 3", "isolated x")
	require.NoError(t, err)
	physSub, err := svc.Create(context.Background(), studentB, catalog.SubjectPhysics, "phys-1", "F = 10 N", "second law")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), studentA, catalog.SubjectMathematics, "math-2", "x = 4", "substitution")
	require.NoError(t, err)

	mathScore := 80.0
	_, err = svc.Grade(mathSub.ID, "Solid", &mathScore)
	require.NoError(t, err)
	physScore := 90.0
	_, err = svc.Grade(physSub.ID, "Well reasoned", &physScore)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalSubmissions)
	assert.Equal(t, 1, stats.PendingReviews)
	assert.Equal(t, 2, stats.ReviewedSubmissions)
	assert.Equal(t, 2, stats.ActiveStudents)
	require.NotNil(t, stats.AvgMathScore)
	assert.Equal(t, 80.0, *stats.AvgMathScore)
	require.NotNil(t, stats.AvgPhysicsScore)
	assert.Equal(t, 90.0, *stats.AvgPhysicsScore)
}

func TestBackfillSuggestionsFillsOnlyEmpty(t *testing.T) {
	repo := newFakeSubmissionRepo()
	adv := &fakeAdvisor{suggest: func(ctx context.Context, input advisor.SuggestInput) (*advisor.SuggestOutput, error) {
		return &advisor.SuggestOutput{FeedbackSuggestion: "Backfilled hint"}, nil
	}}
	svc := newSubmissionService(repo, adv)

	existing := "Original hint"
	withSuggestion := &models.Submission{
		ID: uuid.New(), StudentID: uuid.New(),
		LessonID: "math-1", LessonSubject: catalog.SubjectMathematics, LessonTitle: "t",
		StudentAnswer: "a", StudentReasoning: "r", SubmittedAt: time.Now(),
		AIFeedbackSuggestion: &existing, Status: models.SubmissionStatusPending,
	}
	withoutSuggestion := &models.Submission{
		ID: uuid.New(), StudentID: uuid.New(),
		LessonID: "phys-1", LessonSubject: catalog.SubjectPhysics, LessonTitle: "t",
		StudentAnswer: "a", StudentReasoning: "r", SubmittedAt: time.Now(),
		Status: models.SubmissionStatusPending,
	}
	require.NoError(t, repo.Create(withSuggestion))
	require.NoError(t, repo.Create(withoutSuggestion))

	filled, err := svc.BackfillSuggestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, filled)
	assert.Equal(t, 1, adv.calls)

	kept, err := repo.GetByID(withSuggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original hint", *kept.AIFeedbackSuggestion)

	updated, err := repo.GetByID(withoutSuggestion.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AIFeedbackSuggestion)
	assert.Equal(t, "Backfilled hint", *updated.AIFeedbackSuggestion)
}

func TestBackfillWithoutAdvisorIsNoop(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := newSubmissionService(repo, nil)

	sub := &models.Submission{
		ID: uuid.New(), StudentID: uuid.New(),
		LessonID: "math-1", LessonSubject: catalog.SubjectMathematics, LessonTitle: "t",
		StudentAnswer: "a", StudentReasoning: "r", SubmittedAt: time.Now(),
		Status: models.SubmissionStatusPending,
	}
	require.NoError(t, repo.Create(sub))

	filled, err := svc.BackfillSuggestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, filled)
}

var _ repository.SubmissionRepository = (*fakeSubmissionRepo)(nil)
