package service

import (
	"strings"
	"time"

	"fiber/wof/app/model"
	"fiber/wof/app/notify"
	"fiber/wof/app/repo"
	"fiber/wof/helper"
	"fiber/wof/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type AuthService struct {
	repo     repo.AuthRepository
	notifier *notify.Notifier
	settings Settings
	now      func() time.Time
}

func NewAuthService(repo repo.AuthRepository, n *notify.Notifier, settings Settings) *AuthService {
	return &AuthService{repo: repo, notifier: n, settings: settings, now: time.Now}
}

// /api/auth/generateOTP
func (s *AuthService) GenerateOTP(c *fiber.Ctx) error {
	var req model.GenerateOTPRequest
	if err := c.BodyParser(&req); err != nil || helper.ValidateStruct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.OTPResponse{Success: false, Message: "Invalid email address"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	code, err := helper.GenerateOTP()
	if err != nil {
		return s.otpFailure(c, err, "Failed to generate OTP")
	}
	hash, err := helper.HashOTP(code)
	if err != nil {
		return s.otpFailure(c, err, "Failed to generate OTP")
	}

	now := s.now().UTC()
	otp := &model.OTP{
		ID:        uuid.New(),
		Email:     email,
		CodeHash:  hash,
		CreatedAt: now,
		ExpiresAt: now.Add(s.settings.OTPTTL),
	}
	if err := s.repo.SaveOTP(c.UserContext(), otp); err != nil {
		return s.otpFailure(c, err, "Failed to generate OTP")
	}

	msg, err := notify.OTPMail(email, notify.OTPData{Code: code, Minutes: int(s.settings.OTPTTL / time.Minute)})
	if err == nil {
		err = s.notifier.Send(c.UserContext(), msg)
	}
	if err != nil {
		return s.otpFailure(c, err, "Failed to send OTP")
	}

	return c.JSON(model.OTPResponse{Success: true, Message: "OTP sent successfully"})
}

func (s *AuthService) otpFailure(c *fiber.Ctx, err error, message string) error {
	log.Error().Err(err).Msg(message)
	return c.Status(fiber.StatusInternalServerError).JSON(model.OTPResponse{Success: false, Message: message})
}

// /api/auth/verifyOTP
func (s *AuthService) VerifyOTP(c *fiber.Ctx) error {
	var req model.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil || helper.ValidateStruct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.OTPResponse{Success: false, Message: "Invalid email or OTP"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	now := s.now().UTC()

	active, err := s.repo.ActiveOTPs(c.UserContext(), email, now)
	if err != nil {
		return s.otpFailure(c, err, "Failed to verify OTP")
	}

	var match *model.OTP
	for i := range active {
		if helper.CheckOTPHash(strings.TrimSpace(req.OTP), active[i].CodeHash) {
			match = &active[i]
			break
		}
	}
	if match == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(model.OTPResponse{Success: false, Message: "Invalid or expired OTP"})
	}

	if err := s.repo.MarkUsed(c.UserContext(), match.ID); err != nil {
		return s.otpFailure(c, err, "Failed to verify OTP")
	}
	if err := s.repo.DeleteExpired(c.UserContext(), now); err != nil {
		log.Warn().Err(err).Msg("delete expired otps")
	}

	token, err := helper.GenerateToken(email, s.settings.TokenTTL)
	if err != nil {
		return s.otpFailure(c, err, "Failed to verify OTP")
	}

	cookie := &fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.settings.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if s.settings.TokenTTL > 0 {
		cookie.Expires = now.Add(s.settings.TokenTTL)
	}
	c.Cookie(cookie)

	return c.JSON(model.OTPResponse{Success: true, Message: "OTP verified successfully", Token: token})
}

// /api/auth/check-admin
func (s *AuthService) CheckAdmin(c *fiber.Ctx) error {
	var req model.CheckAdminRequest
	if err := c.BodyParser(&req); err != nil || helper.ValidateStruct(req) != nil {
		return badRequest(c, "Missing required field: email")
	}
	return c.JSON(model.CheckAdminResponse{IsAdmin: middleware.IsAdmin(s.settings.AllowedAdmins, req.Email)})
}

// /api/auth/decrypt
func (s *AuthService) Decrypt(c *fiber.Ctx) error {
	var req model.DecryptRequest
	if err := c.BodyParser(&req); err != nil || helper.ValidateStruct(req) != nil {
		return badRequest(c, "Token is required in the request body")
	}

	claims, err := helper.ValidateToken(req.Token)
	switch {
	case err == nil:
		return c.JSON(model.DecryptResponse{Payload: claims})
	case errors.Is(err, jwt.ErrTokenExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{Success: false, Message: "Token has expired"})
	case errors.Is(err, jwt.ErrTokenMalformed):
		return badRequest(c, "Invalid token format")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{Success: false, Message: "Invalid token signature"})
	}
	return badRequest(c, "Token claim validation failed")
}

// /api/auth/logout
func (s *AuthService) Logout(c *fiber.Ctx) error {
	token := middleware.TokenFrom(c)
	actor, _ := middleware.ActorFrom(c)

	// tokens without an expiry stay revoked for a year
	expires := s.now().UTC().AddDate(1, 0, 0)
	if claims, ok := c.Locals("claims").(*model.JWTClaims); ok && claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}

	if err := s.repo.RevokeToken(c.UserContext(), &model.RevokedToken{
		Token:     token,
		Email:     actor.Email,
		ExpiresAt: expires,
	}); err != nil {
		return fail(c, err, "Failed to logout")
	}

	c.ClearCookie(middleware.TokenCookie)
	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Logged out successfully"})
}
