package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appointa/appointa/db"
	"github.com/appointa/appointa/models"
	"github.com/appointa/appointa/utils"
)

// GetAllActivities returns every billable activity.
func GetAllActivities(c *fiber.Ctx) error {
	var activities []models.Activity
	if err := db.DB.Find(&activities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch activities",
			Error:   err.Error(),
		})
	}
	return c.JSON(activities)
}

// GetActivity returns one activity by ID.
func GetActivity(c *fiber.Ctx) error {
	id := c.Params("id")
	var activity models.Activity
	if err := db.DB.First(&activity, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Activity not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(activity)
}

// CreateActivity adds a new activity. Appointments linked later will
// snapshot its price and duration at their own save time.
func CreateActivity(c *fiber.Ctx) error {
	var activity models.Activity
	if err := c.BodyParser(&activity); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if activity.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Activity name is required",
		})
	}
	if activity.Price.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Activity price must not be negative",
		})
	}
	// Normalize overflowing minutes, e.g. {0h, 90m} becomes {1h, 30m}.
	activity.Duration = models.FromDuration(activity.Duration.ToDuration())
	if err := db.DB.Create(&activity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create activity",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

// UpdateActivity changes an activity's own row. Derived fields on
// appointments that already linked it stay as they were computed.
func UpdateActivity(c *fiber.Ctx) error {
	id := c.Params("id")
	var activity models.Activity
	if err := db.DB.First(&activity, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Activity not found",
			Error:   err.Error(),
		})
	}

	var input models.Activity
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Price.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Activity price must not be negative",
		})
	}
	input.Duration = models.FromDuration(input.Duration.ToDuration())

	if err := db.DB.Model(&activity).Updates(input).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update activity",
			Error:   err.Error(),
		})
	}
	return c.JSON(activity)
}

// DeleteActivity removes an activity by ID.
func DeleteActivity(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Where("id = ?", id).Delete(&models.Activity{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete activity",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
