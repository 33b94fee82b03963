package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

var started = time.Now()

func GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "booking frontend is up",
		"data":    fiber.Map{"uptime": time.Since(started).Round(time.Second).String()}})
}
