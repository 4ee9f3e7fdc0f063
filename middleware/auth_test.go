package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fiber/wof/config"
	"fiber/wof/helper"
	"fiber/wof/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, token string) (bool, error) {
	return r[token], nil
}

type brokenChecker struct{}

func (brokenChecker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("database is locked")
}

func testApp(revoked middleware.RevocationChecker) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error {
		actor, _ := middleware.ActorFrom(c)
		return c.SendString(actor.Username)
	}
	auth := middleware.AuthRequired(revoked)
	app.Get("/submit", auth, middleware.DomainRequired("Only MUJ students allowed to submit.", "muj.manipal.edu"), ok)
	app.Get("/admin", auth, middleware.DomainRequired("Access restricted.", "muj.manipal.edu", "gmail.com"), middleware.AdminRequired([]string{"ritwik"}), ok)
	return app
}

func token(t *testing.T, email string) string {
	t.Helper()
	tok, err := helper.GenerateToken(email, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthRequired(t *testing.T) {
	config.Env.JWTSecret = "test-secret"
	app := testApp(revokedSet{})

	tests := []struct {
		name   string
		path   string
		setup  func(r *http.Request)
		status int
	}{
		{"no token", "/submit", func(*http.Request) {}, http.StatusUnauthorized},
		{"garbage token", "/submit", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"student via cookie", "/submit", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token(t, "stud@muj.manipal.edu")})
		}, http.StatusOK},
		{"student via bearer", "/submit", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, "stud@muj.manipal.edu"))
		}, http.StatusOK},
		{"professor cannot submit", "/submit", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, "prof@gmail.com"))
		}, http.StatusForbidden},
		{"admin allowed", "/admin", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, "Ritwik@gmail.com"))
		}, http.StatusOK},
		{"non admin", "/admin", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, "someone@gmail.com"))
		}, http.StatusForbidden},
		{"admin name on foreign domain", "/admin", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, "ritwik@yahoo.com"))
		}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			tt.setup(req)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuthRequired_Revoked(t *testing.T) {
	config.Env.JWTSecret = "test-secret"
	tok := token(t, "stud@muj.manipal.edu")
	app := testApp(revokedSet{tok: true})

	req := httptest.NewRequest(http.MethodGet, "/submit", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_RevocationStoreDown(t *testing.T) {
	config.Env.JWTSecret = "test-secret"
	app := testApp(brokenChecker{})

	req := httptest.NewRequest(http.MethodGet, "/submit", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "stud@muj.manipal.edu"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestIsAdmin(t *testing.T) {
	admins := []string{"alice", " Bob "}
	assert.True(t, middleware.IsAdmin(admins, "alice@gmail.com"))
	assert.True(t, middleware.IsAdmin(admins, "bob@muj.manipal.edu"))
	assert.False(t, middleware.IsAdmin(admins, "carol@gmail.com"))
	assert.False(t, middleware.IsAdmin(admins, "alice"))
}
