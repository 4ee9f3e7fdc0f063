package service

import (
	"fiber/wof/app/board"
	"fiber/wof/app/model"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var errForbidden = errors.New("This submission is not assigned to you.")

// StatusOf maps the error taxonomy onto HTTP status codes.
func StatusOf(err error) int {
	switch {
	case model.IsValidation(err):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrCapacityExceeded):
		return fiber.StatusConflict
	case errors.Is(err, errForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, board.ErrClosed):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// fail writes err as an error envelope. Client errors carry their own message;
// server errors use message and keep the cause in the error field.
func fail(c *fiber.Ctx, err error, message string) error {
	status := StatusOf(err)
	if status < fiber.StatusInternalServerError {
		return c.Status(status).JSON(model.ErrorResponse{Success: false, Message: clientMessage(err)})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg(message)
	return c.Status(status).JSON(model.ErrorResponse{Success: false, Message: message, Error: err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Success: false, Message: message})
}

func clientMessage(err error) string {
	var v *model.ValidationError
	if errors.As(err, &v) {
		return v.Error()
	}
	if errors.Is(err, model.ErrNotFound) {
		return "No document found with the given _id"
	}
	if errors.Is(err, model.ErrCapacityExceeded) {
		return "You can only have 10 Top 10 achievements. Remove one before adding another."
	}
	return err.Error()
}
