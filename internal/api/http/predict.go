package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/crop-recommendation/internal/crop"
	"github.com/i474232898/crop-recommendation/internal/metrics"
	"github.com/i474232898/crop-recommendation/internal/web"
)

func index(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(web.IndexHTML)
}

// predictHandler serves POST /predict. An empty body is a 400; every other
// failure is a 500 carrying the underlying message.
func predictHandler(rec *crop.Recommender, collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		timer := collector.PredictionTimer()

		result, err := predict(rec, c.Body())
		kind := crop.Kind(err)
		collector.RecordPrediction(kind)

		if err != nil {
			if errors.Is(err, crop.ErrNoData) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			// errorHandler logs the failure once.
			c.Locals(errorKindKey, kind)
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		timer.ObserveDuration()
		return c.JSON(result)
	}
}

func predict(rec *crop.Recommender, body []byte) (crop.Recommendation, error) {
	in, err := crop.ParseInput(body)
	if err != nil {
		return crop.Recommendation{}, err
	}
	return rec.Recommend(in)
}
