package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/config"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/utils"
)

var startedAt = time.Now()

// HealthResponse is the payload returned by the health endpoint.
type HealthResponse struct {
	Status        string    `json:"status"`
	Service       string    `json:"service"`
	Environment   string    `json:"environment"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Timestamp     time.Time `json:"timestamp"`
}

// HealthCheck reports liveness along with basic service identity.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().UTC()
		payload := HealthResponse{
			Status:        "ok",
			Service:       cfg.AppName,
			Environment:   cfg.AppEnv,
			UptimeSeconds: now.Sub(startedAt.UTC()).Seconds(),
			Timestamp:     now,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
