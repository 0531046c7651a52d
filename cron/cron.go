package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/appointa/appointa/db"
	"github.com/appointa/appointa/logger"
	"github.com/appointa/appointa/models"
	"github.com/appointa/appointa/utils"
)

// StartCronJobs initializes and starts the cron scheduler for
// appointment reminders and the past-appointment status sweep.
func StartCronJobs() {
	c := cron.New()
	// Run every minute to catch appointments starting in the next hour
	if _, err := c.AddFunc("* * * * *", sendAppointmentReminders); err != nil {
		logger.L.Fatal("Failed to add reminder cron job", zap.Error(err))
	}
	// Settle past appointments every 15 minutes
	if _, err := c.AddFunc("*/15 * * * *", settlePastAppointments); err != nil {
		logger.L.Fatal("Failed to add settle cron job", zap.Error(err))
	}
	c.Start()
	logger.L.Info("Cron job scheduler started")
}

// sendAppointmentReminders mails every recipient of appointments
// starting roughly one hour from now.
func sendAppointmentReminders() {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowStart := models.NewTimeOfDay(now.Hour(), now.Minute()).Add(55 * time.Minute)
	windowEnd := models.NewTimeOfDay(now.Hour(), now.Minute()).Add(65 * time.Minute)

	var appointments []models.Appointment
	err := db.DB.Preload("Recipients.Recipient").Preload("Providers.Provider").
		Where("date = ?", today).
		Where("start_time >= ? AND start_time < ?", windowStart, windowEnd).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmedByRecipient}).
		Where("is_blocked = ?", false).
		Find(&appointments).Error
	if err != nil {
		logger.L.Error("Error fetching appointments for reminders", zap.Error(err))
		return
	}

	for _, appointment := range appointments {
		for _, recipient := range appointment.Recipients {
			if recipient.Recipient.Email == "" {
				continue
			}
			if err := sendReminderEmail(&appointment, &recipient.Recipient); err != nil {
				logger.L.Error("Failed to send reminder",
					zap.Uint("appointment_id", appointment.ID),
					zap.Error(err))
				continue
			}
			logger.L.Info("Sent reminder",
				zap.Uint("appointment_id", appointment.ID),
				zap.String("to", recipient.Recipient.Email))
		}
	}
}

// settlePastAppointments finalizes statuses once the slot has passed:
// pending becomes no_show, confirmed becomes completed.
func settlePastAppointments() {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	minute := models.NewTimeOfDay(now.Hour(), now.Minute())

	pastFilter := func() *gorm.DB {
		return db.DB.Model(&models.Appointment{}).
			Where("is_blocked = ?", false).
			Where("date < ? OR (date = ? AND end_time <= ?)", today, today, minute)
	}

	if err := pastFilter().
		Where("status = ?", models.StatusPending).
		Update("status", models.StatusNoShow).Error; err != nil {
		logger.L.Error("Failed to mark no-shows", zap.Error(err))
	}
	if err := pastFilter().
		Where("status = ?", models.StatusConfirmedByRecipient).
		Update("status", models.StatusCompleted).Error; err != nil {
		logger.L.Error("Failed to mark completed", zap.Error(err))
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment, recipient *models.User) error {
	providerNames := ""
	for i, p := range appointment.Providers {
		if i > 0 {
			providerNames += ", "
		}
		providerNames += p.Provider.Name
	}

	endTime := "-"
	if appointment.EndTime != nil {
		endTime = appointment.EndTime.Short()
	}

	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Appointment Team</p>
	`, recipient.Name, providerNames,
		appointment.Date.Format("2006-01-02"),
		appointment.StartTime.Short(),
		endTime,
		appointment.Status)

	return utils.SendEmail(recipient.Email, subject, body)
}
