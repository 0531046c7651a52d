package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Activity is a billable service that can be linked to appointments.
// Its price and duration drive the automatic price/end-time fields:
// the values are read when the link is saved and never re-applied to
// existing appointments.
type Activity struct {
	gorm.Model
	Name        string          `json:"name" gorm:"unique;not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(7,2);not null"`
	Duration    Duration        `json:"duration" gorm:"type:jsonb"`
}
