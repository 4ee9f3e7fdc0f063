package middleware

import (
	"context"
	"strings"

	"fiber/wof/app/model"
	"fiber/wof/helper"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	TokenCookie = "token"
	actorKey    = "actor"
)

// RevocationChecker reports whether a session token was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenFrom reads the session token from the cookie, falling back to a bearer header.
func TokenFrom(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Cookies(TokenCookie)); token != "" {
		return token
	}
	bearer := strings.TrimSpace(c.Get("Authorization"))
	if len(bearer) > 7 && strings.EqualFold(bearer[:7], "Bearer ") {
		return strings.TrimSpace(bearer[7:])
	}
	return ""
}

func AuthRequired(revoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFrom(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "No token found.",
			})
		}

		claims, err := helper.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "Invalid or expired token.",
			})
		}

		if revoked != nil {
			yes, err := revoked.IsRevoked(c.UserContext(), token)
			if err != nil {
				log.Error().Err(err).Str("path", c.Path()).Msg("revocation check failed")
				return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
					Success: false,
					Message: "Could not verify token.",
					Error:   err.Error(),
				})
			}
			if yes {
				return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
					Success: false,
					Message: "Token has been revoked.",
				})
			}
		}

		username, domain, ok := helper.SplitEmail(claims.Email)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "Invalid token.",
			})
		}

		c.Locals(actorKey, model.Actor{Email: claims.Email, Username: username, Domain: domain})
		c.Locals("token", token)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// ActorFrom returns the verified caller set by AuthRequired.
func ActorFrom(c *fiber.Ctx) (model.Actor, bool) {
	a, ok := c.Locals(actorKey).(model.Actor)
	return a, ok
}

func DomainRequired(message string, domains ...string) fiber.Handler {
	allowed := make(map[string]bool, len(domains))
	for _, d := range domains {
		allowed[strings.ToLower(d)] = true
	}
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "No token found.",
			})
		}
		if !allowed[actor.Domain] {
			return c.Status(fiber.StatusForbidden).JSON(model.ErrorResponse{
				Success: false,
				Message: message,
			})
		}
		return c.Next()
	}
}

// AdminRequired admits callers whose username is on the allow-list.
func AdminRequired(admins []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Success: false,
				Message: "No token found.",
			})
		}
		if !IsAdmin(admins, actor.Email) {
			return c.Status(fiber.StatusForbidden).JSON(model.ErrorResponse{
				Success: false,
				Message: "You are not an admin.",
			})
		}
		return c.Next()
	}
}

func IsAdmin(admins []string, email string) bool {
	username, _, ok := helper.SplitEmail(email)
	if !ok {
		return false
	}
	for _, a := range admins {
		if strings.EqualFold(strings.TrimSpace(a), username) {
			return true
		}
	}
	return false
}
