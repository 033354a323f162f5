package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/config"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/handler"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/middleware"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	TestHandler       *handler.TestHandler
	QuestionHandler   *handler.QuestionHandler
	SubmissionHandler *handler.SubmissionHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Authoring (admin only)
	if deps.TestHandler != nil {
		tests := api.Group("/tests", jwtMiddleware, middleware.RequireRole("admin"))
		deps.TestHandler.Register(tests)

		if deps.QuestionHandler != nil {
			deps.QuestionHandler.Register(tests)
		}
	}

	// Execution (any authenticated caller)
	if deps.SubmissionHandler != nil {
		run := api.Group("/run", jwtMiddleware)
		deps.SubmissionHandler.RegisterRun(run)

		submissions := api.Group("/submissions", jwtMiddleware)
		deps.SubmissionHandler.Register(submissions)
	}
}
