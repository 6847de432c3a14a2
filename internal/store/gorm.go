package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"child-clinic-server/internal/models"
)

// GormAppointmentStore is the database-backed AppointmentStore.
type GormAppointmentStore struct {
	DB *gorm.DB
}

// NewGormAppointmentStore creates a new GormAppointmentStore.
func NewGormAppointmentStore(db *gorm.DB) *GormAppointmentStore {
	return &GormAppointmentStore{DB: db}
}

func (s *GormAppointmentStore) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := ValidateAppointment(appointment); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Create(appointment).Error
}

func (s *GormAppointmentStore) ListAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := s.DB.WithContext(ctx).Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *GormAppointmentStore) ListByGuardianEmail(ctx context.Context, email string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := s.DB.WithContext(ctx).Where("guardian_email = ?", email).Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *GormAppointmentStore) GetByID(ctx context.Context, id string) (models.Appointment, error) {
	var appointment models.Appointment
	if err := s.DB.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Appointment{}, ErrNotFound
		}
		return models.Appointment{}, err
	}
	return appointment, nil
}

func (s *GormAppointmentStore) DeleteByID(ctx context.Context, id string) (models.Appointment, bool, error) {
	appointment, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Nothing to delete, the cancel stays idempotent.
			return models.Appointment{}, false, nil
		}
		return models.Appointment{}, false, err
	}

	result := s.DB.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return models.Appointment{}, false, result.Error
	}
	// A concurrent cancel may have removed the row between the read and
	// the delete; only the call that actually deleted reports found.
	if result.RowsAffected == 0 {
		return models.Appointment{}, false, nil
	}
	return appointment, true, nil
}
