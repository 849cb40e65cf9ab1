package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/LuthandoGubevu/tutorhub/internal/models"
)

func main() {
	db, err := gorm.Open(sqlite.Open("tutorhub.db"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Submission{},
		&models.Booking{},
		&models.LessonFeedback{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	hash := func(password string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(h)
	}

	tutorID := uuid.New()
	student1ID := uuid.New()
	student2ID := uuid.New()

	users := []models.User{
		{
			ID:           tutorID,
			Email:        "lgubevu@gmail.com",
			PasswordHash: hash("tutor-pass"),
			DisplayName:  "Luthando Gubevu",
			Role:         models.RoleTutor,
		},
		{
			ID:           student1ID,
			Email:        "thandi@example.com",
			PasswordHash: hash("student-pass"),
			DisplayName:  "Thandi Mokoena",
			Role:         models.RoleStudent,
		},
		{
			ID:           student2ID,
			Email:        "sipho@example.com",
			PasswordHash: hash("student-pass"),
			DisplayName:  "Sipho Dlamini",
			Role:         models.RoleStudent,
		},
	}

	for _, user := range users {
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", user.Email, err)
		}
	}

	suggestion := "Check sign handling when isolating x."
	feedback := "Good work, clear reasoning."
	score := 92.0

	submissions := []models.Submission{
		{
			ID:               uuid.New(),
			StudentID:        student1ID,
			LessonID:         "math-1",
			LessonSubject:    "Mathematics",
			LessonTitle:      "Mathematics Lesson 1: Introduction to Calculus Topic 1",
			StudentAnswer:    "x = 3",
			StudentReasoning: "Isolated x by subtracting 5 then dividing by 2",
			SubmittedAt:      time.Now().Add(-48 * time.Hour),
			AIFeedbackSuggestion: &suggestion,
			TutorFeedback:        &feedback,
			Status:               models.SubmissionStatusReviewed,
			Score:                &score,
		},
		{
			ID:               uuid.New(),
			StudentID:        student2ID,
			LessonID:         "phys-1",
			LessonSubject:    "Physics",
			LessonTitle:      "Physics Lesson 1: Exploring Newtonian Mechanics Principle 1",
			StudentAnswer:    "100 J",
			StudentReasoning: "All kinetic energy converts to potential energy at the top",
			SubmittedAt:      time.Now().Add(-2 * time.Hour),
			Status:           models.SubmissionStatusPending,
		},
	}

	for _, submission := range submissions {
		if err := db.Create(&submission).Error; err != nil {
			log.Fatalf("Failed to create submission: %v", err)
		}
	}

	booking := models.Booking{
		ID:              uuid.New(),
		StudentID:       student1ID,
		Subject:         "Mathematics",
		DateTime:        time.Now().AddDate(0, 0, 3),
		DurationMinutes: 30,
		GoogleMeetLink:  "https://meet.google.com/lookup/seed0001",
		Status:          models.BookingStatusConfirmed,
	}
	if err := db.Create(&booking).Error; err != nil {
		log.Fatalf("Failed to create booking: %v", err)
	}

	fmt.Println("Seed data created:")
	fmt.Printf("  tutor:    lgubevu@gmail.com / tutor-pass\n")
	fmt.Printf("  students: thandi@example.com, sipho@example.com / student-pass\n")
}
