package catalog

import (
	"fmt"
	"time"
)

// Subject names as they appear on lessons and submissions.
const (
	SubjectMathematics = "Mathematics"
	SubjectPhysics     = "Physics"
)

// Lesson is static reference content. The catalog is read-only; submissions
// point at lessons by (subject, id) instead of embedding them.
type Lesson struct {
	ID              string `json:"id"`
	Subject         string `json:"subject"`
	Title           string `json:"title"`
	VideoURL        string `json:"video_url,omitempty"`
	RichTextContent string `json:"rich_text_content"`
	Question        string `json:"question"`
	ExampleSolution string `json:"example_solution,omitempty"`
}

// TutorAvailability lists open slots for one day.
type TutorAvailability struct {
	Date      time.Time `json:"date"`
	TimeSlots []string  `json:"time_slots"`
}

var (
	mathematicsLessons = buildMathematicsLessons()
	physicsLessons     = buildPhysicsLessons()
)

func buildMathematicsLessons() []Lesson {
	lessons := make([]Lesson, 10)
	for i := range lessons {
		topic := "Calculus"
		if i%2 == 1 {
			topic = "Algebra"
		}
		videoURL := "https://www.youtube.com/embed/dQw4w9WgXcQ"
		if i == 0 {
			videoURL = "https://www.youtube.com/embed/VScM8Z8Jls0"
		}
		lessons[i] = Lesson{
			ID:       fmt.Sprintf("math-%d", i+1),
			Subject:  SubjectMathematics,
			Title:    fmt.Sprintf("Mathematics Lesson %d: Introduction to %s Topic %d", i+1, topic, i/2+1),
			VideoURL: videoURL,
			RichTextContent: fmt.Sprintf(
				`<p>This is a rich text explanation for Mathematics Lesson %d.</p><p>We will explore <strong>key concepts</strong> and <em>examples</em>.</p><p>A common formula is \(E = mc^2\), or more simply for this lesson, consider \( (a+b)^2 = a^2 + 2ab + b^2 \).</p>`,
				i+1),
			Question:        "Solve for x:  2x + 5 = 11. What is the value of x?",
			ExampleSolution: "2x + 5 = 11\n2x = 11 - 5\n2x = 6\nx = 3",
		}
	}
	return lessons
}

func buildPhysicsLessons() []Lesson {
	lessons := make([]Lesson, 10)
	for i := range lessons {
		principle := "Newtonian Mechanics"
		if i%2 == 1 {
			principle = "Thermodynamics"
		}
		lessons[i] = Lesson{
			ID:       fmt.Sprintf("phys-%d", i+1),
			Subject:  SubjectPhysics,
			Title:    fmt.Sprintf("Physics Lesson %d: Exploring %s Principle %d", i+1, principle, i/2+1),
			VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ",
			RichTextContent: fmt.Sprintf(
				`<p>Welcome to Physics Lesson %d.</p><p>Today's topic involves understanding <strong>forces</strong> and <em>energy transformations</em>.</p><p>Key equation: \( F = ma \). We will also discuss concepts like kinetic energy: \( KE = \frac{1}{2}mv^2 \).</p>`,
				i+1),
			Question:        "A ball of mass 2kg is thrown upwards with an initial velocity of 10 m/s. What is its maximum potential energy? (g = 9.8 m/s^2)",
			ExampleSolution: "Initial kinetic energy KE = 0.5 * m * v^2 = 0.5 * 2 * 10^2 = 100 J. At maximum height, all KE is converted to PE. So, max PE = 100 J.",
		}
	}
	return lessons
}

// ListBySubject returns the lessons for a subject, or nil for an unknown one.
func ListBySubject(subject string) []Lesson {
	switch subject {
	case SubjectMathematics:
		return mathematicsLessons
	case SubjectPhysics:
		return physicsLessons
	default:
		return nil
	}
}

// GetLessonByID looks a lesson up by (subject, id). The bool reports whether
// the lesson exists.
func GetLessonByID(subject, lessonID string) (Lesson, bool) {
	for _, lesson := range ListBySubject(subject) {
		if lesson.ID == lessonID {
			return lesson, true
		}
	}
	return Lesson{}, false
}

// ValidSubject reports whether the subject names a catalog section.
func ValidSubject(subject string) bool {
	return subject == SubjectMathematics || subject == SubjectPhysics
}

// TutorAvailabilitySlots returns the static booking slots offered to
// students, relative to now.
func TutorAvailabilitySlots(now time.Time) []TutorAvailability {
	day := func(offset int) time.Time {
		t := now.AddDate(0, 0, offset)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	return []TutorAvailability{
		{Date: day(3), TimeSlots: []string{"09:00", "09:30", "10:00", "14:00", "14:30"}},
		{Date: day(4), TimeSlots: []string{"10:30", "11:00", "11:30", "15:00", "15:30", "16:00"}},
		{Date: day(7), TimeSlots: []string{"09:00", "13:00", "13:30"}},
	}
}
