package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus defines the state of a tutoring session booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Booking is a single tutoring session reservation. Single create, no state
// machine beyond the status field.
type Booking struct {
	ID              uuid.UUID     `json:"id" gorm:"type:text;primary_key"`
	StudentID       uuid.UUID     `json:"student_id" gorm:"type:text;index;not null"`
	Subject         string        `json:"subject" gorm:"not null"` // "Mathematics", "Physics", "General"
	DateTime        time.Time     `json:"date_time" gorm:"not null"`
	DurationMinutes int           `json:"duration_minutes"`
	GoogleMeetLink  string        `json:"google_meet_link"`
	Status          BookingStatus `json:"status" gorm:"default:'Confirmed'"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// LessonFeedback is a student's rating of a lesson itself (not of a
// submission). Single create.
type LessonFeedback struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	LessonID  string    `json:"lesson_id" gorm:"not null"`
	StudentID uuid.UUID `json:"student_id" gorm:"type:text;index;not null"`
	Rating    int       `json:"rating" gorm:"not null"` // 1-5
	Comments  string    `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}
