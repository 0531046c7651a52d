package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusUnspecified          AppointmentStatus = ""
	StatusPending              AppointmentStatus = "pending"
	StatusConfirmedByRecipient AppointmentStatus = "confirmed_by_recipient"
	StatusCanceledByRecipient  AppointmentStatus = "canceled_by_recipient"
	StatusCanceledByProvider   AppointmentStatus = "canceled_by_provider"
	StatusCompleted            AppointmentStatus = "completed"
	StatusNoShow               AppointmentStatus = "no_show"
)

// Appointment is a booked (or blocking) time slot on a calendar date.
// EndTime is nullable: a nil end time means "not yet computed", not
// "equal to start".
type Appointment struct {
	gorm.Model
	Date            time.Time         `json:"date" gorm:"type:date;not null;index"`
	StartTime       TimeOfDay         `json:"start_time" gorm:"type:smallint;not null"`
	EndTime         *TimeOfDay        `json:"end_time" gorm:"type:smallint"`
	Status          AppointmentStatus `json:"status" gorm:"type:varchar(30);default:'pending'"`
	Price           decimal.Decimal   `json:"price" gorm:"type:numeric(7,2);default:0"`
	AutoPrice       bool              `json:"auto_price" gorm:"default:true"`
	AutoEndTime     bool              `json:"auto_end_time" gorm:"default:true"`
	IsBlocked       bool              `json:"is_blocked" gorm:"default:false"`
	PreventsOverlap bool              `json:"prevents_overlap" gorm:"default:true"`

	Providers  []AppointmentProvider  `json:"providers,omitempty" gorm:"foreignKey:AppointmentID"`
	Recipients []AppointmentRecipient `json:"recipients,omitempty" gorm:"foreignKey:AppointmentID"`
	Activities []AppointmentActivity  `json:"activities,omitempty" gorm:"foreignKey:AppointmentID"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// AppointmentProvider links an appointment to a booked provider.
// The composite unique index is the storage-level backstop for the
// duplicate-membership rule.
type AppointmentProvider struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	AppointmentID uint `json:"appointment_id" gorm:"not null;uniqueIndex:idx_appointment_provider"`
	ProviderID    uint `json:"provider_id" gorm:"not null;uniqueIndex:idx_appointment_provider"`
	Provider      User `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
}

type AppointmentRecipient struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	AppointmentID uint `json:"appointment_id" gorm:"not null;uniqueIndex:idx_appointment_recipient"`
	RecipientID   uint `json:"recipient_id" gorm:"not null;uniqueIndex:idx_appointment_recipient"`
	Recipient     User `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
}

type AppointmentActivity struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	AppointmentID uint     `json:"appointment_id" gorm:"not null;uniqueIndex:idx_appointment_activity"`
	ActivityID    uint     `json:"activity_id" gorm:"not null;uniqueIndex:idx_appointment_activity"`
	Activity      Activity `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
}
