package repository

import (
	"github.com/LuthandoGubevu/tutorhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRepository is the store surface for session bookings
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id uuid.UUID) (*models.Booking, error)
	GetByStudentID(studentID uuid.UUID) ([]*models.Booking, error)
	ListUpcoming() ([]*models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(booking *models.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return r.db.Create(booking).Error
}

func (r *bookingRepository) GetByID(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetByStudentID(studentID uuid.UUID) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.Where("student_id = ?", studentID).
		Order("date_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListUpcoming() ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.Where("date_time >= CURRENT_TIMESTAMP AND status = ?", models.BookingStatusConfirmed).
		Order("date_time ASC").
		Find(&bookings).Error
	return bookings, err
}
