package config

import (
	"errors"

	"fiber/wof/app/model"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

func NewApp() *fiber.App {
	limit := Env.BodyLimitMB
	if limit <= 0 {
		limit = 10
	}

	app := fiber.New(fiber.Config{
		AppName:      "Wall of Fame",
		BodyLimit:    limit * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     originOrAll(Env.SiteURL),
		AllowCredentials: Env.SiteURL != "",
	}))

	return app
}

func originOrAll(site string) string {
	if site == "" {
		return "*"
	}
	return site
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}
	return c.Status(code).JSON(model.ErrorResponse{Success: false, Message: err.Error()})
}
