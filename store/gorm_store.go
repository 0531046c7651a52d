package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/appointa/appointa/models"
	"github.com/appointa/appointa/scheduler"
)

// GormStore implements scheduler.Store on top of GORM/Postgres.
type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindOverlapping returns committed appointments able to conflict with
// the given interval: same provider, same date, prevents_overlap set,
// half-open time-range intersection, candidate itself excluded.
func (s *GormStore) FindOverlapping(ctx context.Context, providerID uint, date time.Time, start, end models.TimeOfDay, excludeID uint) ([]scheduler.AppointmentWindow, error) {
	var windows []scheduler.AppointmentWindow
	q := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("appointments.id, appointments.start_time, appointments.end_time").
		Joins("JOIN appointment_providers ON appointment_providers.appointment_id = appointments.id").
		Where("appointment_providers.provider_id = ?", providerID).
		Where("appointments.prevents_overlap = ?", true).
		Where("appointments.date = ?", dateOnly(date)).
		Where("appointments.start_time < ? AND appointments.end_time > ?", end, start).
		Order("appointments.start_time asc")
	if excludeID != 0 {
		q = q.Where("appointments.id <> ?", excludeID)
	}
	if err := q.Scan(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

// FetchActivitySnapshots reads the current price and duration of the
// given activities. The derived fields computed from these values stay
// frozen on the appointment afterwards.
func (s *GormStore) FetchActivitySnapshots(ctx context.Context, activityIDs []uint) ([]scheduler.ActivitySnapshot, error) {
	if len(activityIDs) == 0 {
		return nil, nil
	}
	var activities []models.Activity
	if err := s.db.WithContext(ctx).Where("id IN ?", activityIDs).Find(&activities).Error; err != nil {
		return nil, err
	}
	snapshots := make([]scheduler.ActivitySnapshot, 0, len(activities))
	for _, a := range activities {
		snapshots = append(snapshots, scheduler.ActivitySnapshot{
			ActivityID: a.ID,
			Price:      a.Price,
			Duration:   a.Duration.ToDuration(),
		})
	}
	return snapshots, nil
}

// Commit writes the appointment row and replaces its relation rows.
// Meant to run inside Transaction so the whole write is atomic.
func (s *GormStore) Commit(ctx context.Context, c *scheduler.Candidate) (*models.Appointment, error) {
	db := s.db.WithContext(ctx)

	appointment := models.Appointment{
		Date:            dateOnly(c.Date),
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		Status:          c.Status,
		Price:           c.Price,
		AutoPrice:       c.AutoPrice,
		AutoEndTime:     c.AutoEndTime,
		IsBlocked:       c.IsBlocked,
		PreventsOverlap: c.PreventsOverlap,
	}

	if c.ID == 0 {
		if err := db.Create(&appointment).Error; err != nil {
			return nil, err
		}
	} else {
		appointment.ID = c.ID
		// Update through an explicit column map: a full-struct Save
		// would write the zero CreatedAt back over the original.
		updates := map[string]interface{}{
			"date":             appointment.Date,
			"start_time":       appointment.StartTime,
			"end_time":         appointment.EndTime,
			"status":           appointment.Status,
			"price":            appointment.Price,
			"auto_price":       appointment.AutoPrice,
			"auto_end_time":    appointment.AutoEndTime,
			"is_blocked":       appointment.IsBlocked,
			"prevents_overlap": appointment.PreventsOverlap,
		}
		if err := db.Model(&appointment).Updates(updates).Error; err != nil {
			return nil, err
		}
		// Relation rows have no lifecycle of their own; replace them
		// wholesale on every save.
		for _, row := range []interface{}{
			&models.AppointmentProvider{},
			&models.AppointmentRecipient{},
			&models.AppointmentActivity{},
		} {
			if err := db.Where("appointment_id = ?", c.ID).Delete(row).Error; err != nil {
				return nil, err
			}
		}
	}

	for _, providerID := range c.ProviderIDs {
		row := models.AppointmentProvider{AppointmentID: appointment.ID, ProviderID: providerID}
		if err := db.Create(&row).Error; err != nil {
			return nil, err
		}
	}
	for _, recipientID := range c.RecipientIDs {
		row := models.AppointmentRecipient{AppointmentID: appointment.ID, RecipientID: recipientID}
		if err := db.Create(&row).Error; err != nil {
			return nil, err
		}
	}
	for _, activityID := range c.ActivityIDs {
		row := models.AppointmentActivity{AppointmentID: appointment.ID, ActivityID: activityID}
		if err := db.Create(&row).Error; err != nil {
			return nil, err
		}
	}

	var saved models.Appointment
	if err := db.
		Preload("Providers").Preload("Recipients").Preload("Activities").
		First(&saved, appointment.ID).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// Transaction runs fn against a transactional store; any error rolls
// the whole write back.
func (s *GormStore) Transaction(ctx context.Context, fn func(scheduler.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// LockSchedule takes a Postgres transaction advisory lock keyed by
// (provider, date). Two saves touching the same provider and date
// serialize here, which closes the race between the conflict query and
// the commit. The lock releases when the transaction ends.
func (s *GormStore) LockSchedule(ctx context.Context, providerID uint, date time.Time) error {
	dayKey := dateOnly(date).Unix() / (24 * 60 * 60)
	return s.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(providerID), int32(dayKey)).
		Error
}

// Delete removes an appointment and cascades to its relation rows.
func (s *GormStore) Delete(ctx context.Context, appointmentID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range []interface{}{
			&models.AppointmentProvider{},
			&models.AppointmentRecipient{},
			&models.AppointmentActivity{},
		} {
			if err := tx.Where("appointment_id = ?", appointmentID).Delete(row).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Appointment{}, appointmentID).Error
	})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
