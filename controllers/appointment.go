package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/appointa/appointa/db"
	"github.com/appointa/appointa/logger"
	"github.com/appointa/appointa/models"
	"github.com/appointa/appointa/redis"
	"github.com/appointa/appointa/scheduler"
	"github.com/appointa/appointa/store"
	"github.com/appointa/appointa/utils"
)

const scheduleCacheTTL = 5 * time.Minute

// Scheduler builds the scheduling engine over the live database. The
// provider label accessor renders user names in conflict messages.
func Scheduler() *scheduler.Service {
	return scheduler.NewService(store.New(db.DB), scheduler.Config{
		ProviderLabel: func(ctx context.Context, providerID uint) string {
			var user models.User
			if err := db.DB.WithContext(ctx).First(&user, providerID).Error; err != nil || user.Name == "" {
				return fmt.Sprintf("%d", providerID)
			}
			return user.Name
		},
	})
}

// appointmentInput is the write payload for create/update. Pointer
// fields distinguish "not sent" from a zero value so PATCH keeps
// whatever the caller left out.
type appointmentInput struct {
	Date            *string                   `json:"date"` // "2006-01-02"
	StartTime       *models.TimeOfDay         `json:"start_time"`
	EndTime         *models.TimeOfDay         `json:"end_time"`
	Status          *models.AppointmentStatus `json:"status"`
	Price           *decimal.Decimal          `json:"price"`
	AutoPrice       *bool                     `json:"auto_price"`
	AutoEndTime     *bool                     `json:"auto_end_time"`
	IsBlocked       *bool                     `json:"is_blocked"`
	PreventsOverlap *bool                     `json:"prevents_overlap"`
	ProviderIDs     []uint                    `json:"provider_ids"`
	RecipientIDs    []uint                    `json:"recipient_ids"`
	ActivityIDs     []uint                    `json:"activity_ids"`
}

// toCandidate overlays the input on top of an existing appointment, or
// on the model defaults when creating.
func (in *appointmentInput) toCandidate(existing *models.Appointment) (*scheduler.Candidate, error) {
	c := &scheduler.Candidate{
		Status:          models.StatusPending,
		Price:           decimal.Zero,
		AutoPrice:       true,
		AutoEndTime:     true,
		PreventsOverlap: true,
	}

	if existing != nil {
		c.ID = existing.ID
		c.Date = existing.Date
		c.StartTime = existing.StartTime
		c.EndTime = existing.EndTime
		c.Status = existing.Status
		c.Price = existing.Price
		c.AutoPrice = existing.AutoPrice
		c.AutoEndTime = existing.AutoEndTime
		c.IsBlocked = existing.IsBlocked
		c.PreventsOverlap = existing.PreventsOverlap
		for _, row := range existing.Providers {
			c.ProviderIDs = append(c.ProviderIDs, row.ProviderID)
		}
		for _, row := range existing.Recipients {
			c.RecipientIDs = append(c.RecipientIDs, row.RecipientID)
		}
		for _, row := range existing.Activities {
			c.ActivityIDs = append(c.ActivityIDs, row.ActivityID)
		}
	}

	if in.Date != nil {
		date, err := time.Parse("2006-01-02", *in.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *in.Date)
		}
		c.Date = date
	}
	if c.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}
	if in.StartTime != nil {
		c.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		c.EndTime = in.EndTime
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if in.AutoPrice != nil {
		c.AutoPrice = *in.AutoPrice
	}
	if in.AutoEndTime != nil {
		c.AutoEndTime = *in.AutoEndTime
	}
	if in.IsBlocked != nil {
		c.IsBlocked = *in.IsBlocked
	}
	if in.PreventsOverlap != nil {
		c.PreventsOverlap = *in.PreventsOverlap
	}
	if in.ProviderIDs != nil {
		c.ProviderIDs = in.ProviderIDs
	}
	if in.RecipientIDs != nil {
		c.RecipientIDs = in.RecipientIDs
	}
	if in.ActivityIDs != nil {
		c.ActivityIDs = in.ActivityIDs
	}
	return c, nil
}

// GetAllAppointments returns every appointment with its relation rows.
func GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := db.DB.Preload("Providers.Provider").Preload("Recipients.Recipient").Preload("Activities.Activity").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns one appointment by ID.
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Providers.Provider").Preload("Recipients.Recipient").Preload("Activities.Activity").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreateAppointment validates and saves a new appointment through the
// scheduling engine.
func CreateAppointment(c *fiber.Ctx) error {
	var input appointmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	candidate, err := input.toCandidate(nil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment payload",
			Error:   err.Error(),
		})
	}

	return saveAndRespond(c, candidate, fiber.StatusCreated)
}

// UpdateAppointment re-runs the entire pipeline over the stored
// appointment with the patch applied, conflict checks included.
func UpdateAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
		})
	}

	var existing models.Appointment
	if err := db.DB.Preload("Providers").Preload("Recipients").Preload("Activities").First(&existing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	var input appointmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	candidate, err := input.toCandidate(&existing)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment payload",
			Error:   err.Error(),
		})
	}

	// Flush cache for the old date too in case the patch moved the
	// appointment.
	invalidateScheduleCache(candidateProviders(&existing), existing.Date)

	return saveAndRespond(c, candidate, fiber.StatusOK)
}

func saveAndRespond(c *fiber.Ctx, candidate *scheduler.Candidate, okStatus int) error {
	appointment, violations, err := Scheduler().ValidateAndSave(c.Context(), candidate)
	if err != nil {
		logger.L.Error("appointment save failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(utils.ErrorResponse{
			Message: "Storage unavailable, please retry",
			Error:   err.Error(),
		})
	}
	if len(violations) > 0 {
		status := fiber.StatusUnprocessableEntity
		for _, v := range violations {
			if v.Kind == scheduler.KindConflict {
				status = fiber.StatusConflict
				break
			}
		}
		return c.Status(status).JSON(fiber.Map{
			"message":    "Appointment rejected",
			"violations": violations,
		})
	}

	invalidateScheduleCache(candidate.ProviderIDs, candidate.Date)
	return c.Status(okStatus).JSON(appointment)
}

// DeleteAppointment removes an appointment and its relation rows.
func DeleteAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
		})
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Providers").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := store.New(db.DB).Delete(c.Context(), appointment.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete appointment",
			Error:   err.Error(),
		})
	}

	invalidateScheduleCache(candidateProviders(&appointment), appointment.Date)
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckConflict is the read-only preflight for slot pickers: it reports
// the first clash for one provider without saving anything.
func CheckConflict(c *fiber.Ctx) error {
	var input struct {
		appointmentInput
		ProviderID uint `json:"provider_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.ProviderID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "provider_id is required",
		})
	}

	candidate, err := input.toCandidate(nil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment payload",
			Error:   err.Error(),
		})
	}

	conflict, err := Scheduler().CheckConflict(c.Context(), candidate, input.ProviderID)
	if err != nil {
		logger.L.Error("conflict preflight failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(utils.ErrorResponse{
			Message: "Storage unavailable, please retry",
			Error:   err.Error(),
		})
	}

	if conflict == nil {
		return c.JSON(fiber.Map{"conflict": nil, "available": true})
	}
	return c.JSON(fiber.Map{
		"conflict":  conflict,
		"message":   conflict.Message(),
		"available": false,
	})
}

// GetProviderSchedule returns a provider's appointments for one date,
// cached in Redis until the next save touches that schedule.
func GetProviderSchedule(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid provider ID",
		})
	}

	dateParam := c.Query("date", time.Now().Format("2006-01-02"))
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date, expected YYYY-MM-DD",
		})
	}

	cacheKey := scheduleCacheKey(uint(providerID), date)
	if cached, err := redis.Client.Get(redis.Ctx, cacheKey).Result(); err == nil {
		c.Set("X-Cache", "hit")
		c.Set("Content-Type", "application/json")
		return c.SendString(cached)
	}

	var appointments []models.Appointment
	err = db.DB.
		Joins("JOIN appointment_providers ON appointment_providers.appointment_id = appointments.id").
		Where("appointment_providers.provider_id = ?", providerID).
		Where("appointments.date = ?", date).
		Order("appointments.start_time asc").
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch schedule",
			Error:   err.Error(),
		})
	}

	payload := fiber.Map{
		"provider_id":  providerID,
		"date":         dateParam,
		"appointments": appointments,
	}
	if encoded, err := json.Marshal(payload); err == nil {
		redis.Client.Set(redis.Ctx, cacheKey, encoded, scheduleCacheTTL)
	}
	return c.JSON(payload)
}

func scheduleCacheKey(providerID uint, date time.Time) string {
	return fmt.Sprintf("schedule:%d:%s", providerID, date.Format("2006-01-02"))
}

func invalidateScheduleCache(providerIDs []uint, date time.Time) {
	if redis.Client == nil {
		return
	}
	for _, providerID := range providerIDs {
		redis.Client.Del(redis.Ctx, scheduleCacheKey(providerID, date))
	}
}

func candidateProviders(a *models.Appointment) []uint {
	ids := make([]uint, 0, len(a.Providers))
	for _, row := range a.Providers {
		ids = append(ids, row.ProviderID)
	}
	return ids
}
