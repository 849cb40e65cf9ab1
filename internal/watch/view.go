package watch

import (
	"log"

	"github.com/LuthandoGubevu/tutorhub/internal/catalog"
	"github.com/LuthandoGubevu/tutorhub/internal/models"
)

// SubmissionView is a submission paired with its resolved lesson, ready for
// a consumer.
type SubmissionView struct {
	Submission *models.Submission `json:"submission"`
	Lesson     catalog.Lesson     `json:"lesson"`
}

// ResolveViews resolves each record's lesson against the catalog. Records
// whose lesson no longer exists are excluded with a warning; a submission is
// never shown with a null lesson.
func ResolveViews(submissions []*models.Submission) []SubmissionView {
	views := make([]SubmissionView, 0, len(submissions))
	for _, sub := range submissions {
		lesson, ok := catalog.GetLessonByID(sub.LessonSubject, sub.LessonID)
		if !ok {
			log.Printf("watch: lesson %s/%s not found for submission %s, excluded from view",
				sub.LessonSubject, sub.LessonID, sub.ID)
			continue
		}
		views = append(views, SubmissionView{Submission: sub, Lesson: lesson})
	}
	return views
}
