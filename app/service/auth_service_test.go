package service_test

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"fiber/wof/app/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`<strong>([0-9]{6})</strong>`)

func (h *harness) requestOTP(t *testing.T, email string) string {
	t.Helper()
	status, raw := h.do(t, http.MethodPost, "/api/auth/generateOTP", map[string]any{"email": email}, "")
	require.Equal(t, http.StatusOK, status, string(raw))

	sent := h.mailer.Sent()
	require.NotEmpty(t, sent)
	last := sent[len(sent)-1]
	assert.Equal(t, strings.ToLower(email), last.To)

	m := codePattern.FindStringSubmatch(last.HTML)
	require.Len(t, m, 2, last.HTML)
	return m[1]
}

func TestAuth_OTPFlow(t *testing.T) {
	h := newHarness(t)

	status, _ := h.do(t, http.MethodPost, "/api/auth/generateOTP", map[string]any{"email": "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	code := h.requestOTP(t, "Stud@muj.manipal.edu")

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	status, _ = h.do(t, http.MethodPut, "/api/auth/verifyOTP", map[string]any{"email": student, "otp": wrong}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	req := httptest.NewRequest(http.MethodPut, "/api/auth/verifyOTP", strings.NewReader(`{"email":"`+student+`","otp":"`+code+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "session cookie is set")
	assert.True(t, cookie.HttpOnly)

	status, raw := h.do(t, http.MethodPost, "/api/auth/decrypt", map[string]any{"token": cookie.Value}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, student, decode[model.DecryptResponse](t, raw).Payload.Email)

	status, _ = h.do(t, http.MethodPut, "/api/auth/verifyOTP", map[string]any{"email": student, "otp": code}, "")
	assert.Equal(t, http.StatusUnauthorized, status, "a code works once")
}

func TestAuth_NewCodeReplacesOld(t *testing.T) {
	h := newHarness(t)

	first := h.requestOTP(t, student)
	second := h.requestOTP(t, student)
	if first == second {
		t.Skip("codes collided")
	}

	status, _ := h.do(t, http.MethodPut, "/api/auth/verifyOTP", map[string]any{"email": student, "otp": first}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = h.do(t, http.MethodPut, "/api/auth/verifyOTP", map[string]any{"email": student, "otp": second}, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestAuth_CheckAdmin(t *testing.T) {
	h := newHarness(t)

	status, raw := h.do(t, http.MethodPost, "/api/auth/check-admin", map[string]any{"email": "Admin@muj.manipal.edu"}, "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[model.CheckAdminResponse](t, raw).IsAdmin)

	_, raw = h.do(t, http.MethodPost, "/api/auth/check-admin", map[string]any{"email": professor}, "")
	assert.False(t, decode[model.CheckAdminResponse](t, raw).IsAdmin)

	status, _ = h.do(t, http.MethodPost, "/api/auth/check-admin", map[string]any{}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAuth_Decrypt(t *testing.T) {
	h := newHarness(t)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": student,
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": student}).SignedString([]byte("other"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"missing", map[string]any{}, http.StatusBadRequest},
		{"expired", map[string]any{"token": expired}, http.StatusUnauthorized},
		{"malformed", map[string]any{"token": "abc"}, http.StatusBadRequest},
		{"forged", map[string]any{"token": forged}, http.StatusUnauthorized},
		{"valid", map[string]any{"token": bearer(t, student)}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := h.do(t, http.MethodPost, "/api/auth/decrypt", tt.body, "")
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestAuth_Logout(t *testing.T) {
	h := newHarness(t)
	token := bearer(t, admin)

	call := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := h.app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusOK, call(http.MethodGet, "/api/admin/achievements"))
	require.Equal(t, http.StatusOK, call(http.MethodPost, "/api/auth/logout"))
	assert.Equal(t, http.StatusUnauthorized, call(http.MethodGet, "/api/admin/achievements"))
}

func TestSendMail(t *testing.T) {
	h := newHarness(t)

	status, raw := h.do(t, http.MethodPost, "/api/sendMail", map[string]any{"email": "x@gmail.com", "html": "<p>hi</p>"}, professor)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required field: subject", decode[model.ErrorResponse](t, raw).Message)

	status, _ = h.do(t, http.MethodPost, "/api/sendMail", map[string]any{"email": "x@gmail.com", "subject": "Hi", "html": "<p>hi</p>"}, professor)
	require.Equal(t, http.StatusOK, status)

	sent := h.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Hi", sent[0].Subject)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	status, raw := h.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", decode[model.HealthResponse](t, raw).Status)
}
