package services

import (
	"context"
	"sort"
	"strings"

	"github.com/LuthandoGubevu/tutorhub/internal/models"
	"github.com/LuthandoGubevu/tutorhub/internal/repository"
	"github.com/LuthandoGubevu/tutorhub/pkg/advisor"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory user store with error injection
type fakeUserRepo struct {
	users      map[uuid.UUID]*models.User
	getErr     error
	getCalls   int
	mergeCalls []map[string]interface{}
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Merge(id uuid.UUID, fields map[string]interface{}) error {
	r.mergeCalls = append(r.mergeCalls, fields)
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if role, ok := fields["role"]; ok {
		user.Role = role.(models.UserRole)
	}
	return nil
}

func (r *fakeUserRepo) ListByRole(role models.UserRole) ([]models.User, error) {
	var users []models.User
	for _, user := range r.users {
		if user.Role == role {
			users = append(users, *user)
		}
	}
	return users, nil
}

// fakeSubmissionRepo is an in-memory submission store that counts writes, so
// tests can verify that invalid input never reaches the store.
type fakeSubmissionRepo struct {
	submissions map[uuid.UUID]*models.Submission
	createErr   error
	writes      int
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[uuid.UUID]*models.Submission)}
}

func (r *fakeSubmissionRepo) Create(submission *models.Submission) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.writes++
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	copied := *submission
	r.submissions[submission.ID] = &copied
	return nil
}

func (r *fakeSubmissionRepo) GetByID(id uuid.UUID) (*models.Submission, error) {
	submission, ok := r.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *submission
	return &copied, nil
}

func (r *fakeSubmissionRepo) GetByStudentID(studentID uuid.UUID) ([]*models.Submission, error) {
	all, _ := r.List(repository.SubmissionFilter{})
	var out []*models.Submission
	for _, submission := range all {
		if submission.StudentID == studentID {
			out = append(out, submission)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) List(filter repository.SubmissionFilter) ([]*models.Submission, error) {
	var out []*models.Submission
	for _, submission := range r.submissions {
		if filter.Subject != "" && submission.LessonSubject != filter.Subject {
			continue
		}
		if filter.Status != "" && submission.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(submission.LessonTitle), strings.ToLower(filter.Search)) {
			continue
		}
		copied := *submission
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (r *fakeSubmissionRepo) UpdateGrade(id uuid.UUID, fields map[string]interface{}) error {
	submission, ok := r.submissions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.writes++
	if feedback, ok := fields["tutor_feedback"]; ok {
		value := feedback.(string)
		submission.TutorFeedback = &value
	}
	if status, ok := fields["status"]; ok {
		submission.Status = status.(models.SubmissionStatus)
	}
	if score, ok := fields["score"]; ok {
		value := score.(float64)
		submission.Score = &value
	}
	return nil
}

func (r *fakeSubmissionRepo) SetSuggestionIfEmpty(id uuid.UUID, suggestion string) error {
	submission, ok := r.submissions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if submission.AIFeedbackSuggestion == nil {
		r.writes++
		submission.AIFeedbackSuggestion = &suggestion
	}
	return nil
}

func (r *fakeSubmissionRepo) ListWithoutSuggestion() ([]*models.Submission, error) {
	var out []*models.Submission
	for _, submission := range r.submissions {
		if submission.AIFeedbackSuggestion == nil && submission.Status == models.SubmissionStatusPending {
			copied := *submission
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeAdvisor lets each test script the advisor's behavior
type fakeAdvisor struct {
	suggest func(ctx context.Context, input advisor.SuggestInput) (*advisor.SuggestOutput, error)
	calls   int
}

func (a *fakeAdvisor) Suggest(ctx context.Context, input advisor.SuggestInput) (*advisor.SuggestOutput, error) {
	a.calls++
	return a.suggest(ctx, input)
}
