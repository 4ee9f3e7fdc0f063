package service

import (
	"fiber/wof/app/model"
	"fiber/wof/app/notify"

	"github.com/gofiber/fiber/v2"
)

type MailService struct {
	notifier *notify.Notifier
}

func NewMailService(n *notify.Notifier) *MailService {
	return &MailService{notifier: n}
}

// /api/sendMail
func (s *MailService) Send(c *fiber.Ctx) error {
	var req model.SendMailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	switch {
	case req.Email == "":
		return badRequest(c, "Missing required field: email")
	case req.Subject == "":
		return badRequest(c, "Missing required field: subject")
	case req.HTML == "":
		return badRequest(c, "Missing required field: html")
	}

	if err := s.notifier.Send(c.UserContext(), notify.Message{To: req.Email, Subject: req.Subject, HTML: req.HTML}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Success: false, Message: "Internal server error"})
	}
	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Email sent successfully"})
}

// /health
func Health(c *fiber.Ctx) error {
	return c.JSON(model.HealthResponse{Status: "ok"})
}
