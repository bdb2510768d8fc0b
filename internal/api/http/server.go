package httpapi

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/crop-recommendation/internal/crop"
	"github.com/i474232898/crop-recommendation/internal/metrics"
	"github.com/i474232898/crop-recommendation/internal/weather"
)

// ServiceName is reported by the health endpoint and the Fiber app.
const ServiceName = "crop-recommendation"

// Options configures the HTTP application.
type Options struct {
	Recommender *crop.Recommender
	Weather     *weather.Service
	Metrics     *metrics.Collector

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	AllowOrigins     string
	DisableAccessLog bool
}

// NewApp builds the Fiber application with middleware and all routes.
func NewApp(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               ServiceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          errorHandler,
	})

	if opts.Recommender == nil {
		opts.Recommender = crop.NewRecommender(nil)
	}

	origins := opts.AllowOrigins
	if origins == "" {
		origins = "*"
	}

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if !opts.DisableAccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))

	app.Get("/", index)
	app.Post("/predict", predictHandler(opts.Recommender, opts.Metrics))
	app.Get("/health", healthHandler(opts.Recommender))

	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	if opts.Weather != nil {
		RegisterRoutes(app, opts.Weather)
	}

	return app
}

// errorKindKey holds an optional failure classification for the error log.
const errorKindKey = "error_kind"

// errorHandler renders every error as {"error": "<message>"}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := err.Error()

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		if kind, ok := c.Locals(errorKindKey).(string); ok {
			log.Printf("ERROR: %s %s [%v] (%s): %s", c.Method(), c.Path(), c.Locals("requestid"), kind, msg)
		} else {
			log.Printf("ERROR: %s %s [%v]: %s", c.Method(), c.Path(), c.Locals("requestid"), msg)
		}
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func healthHandler(rec *crop.Recommender) fiber.Handler {
	return func(c *fiber.Ctx) error {
		artifacts := rec.Artifacts()

		state := "ok"
		if !artifacts.Ready() {
			state = "degraded"
		}
		return c.JSON(fiber.Map{
			"status":    state,
			"service":   ServiceName,
			"artifacts": artifacts.Status(),
		})
	}
}
