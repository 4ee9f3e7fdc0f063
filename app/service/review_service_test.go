package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"fiber/wof/app/model"
	"fiber/wof/app/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview_ListOnlyAssigned(t *testing.T) {
	mine := record("Mira", model.CategoryAwards, 1)
	done := approved(record("Dev", model.CategoryAwards, 2))
	other := record("Omar", model.CategoryAwards, 3)
	other.ProfessorEmail = "someone@gmail.com"
	h := newHarness(t, mine, done, other)

	status, raw := h.do(t, http.MethodGet, "/api/dashboard/submissions", nil, professor)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Len(t, decode[model.AchievementsResponse](t, raw).Achievements, 2)

	status, raw = h.do(t, http.MethodGet, "/api/dashboard/submissions?status=pending", nil, professor)
	require.Equal(t, http.StatusOK, status)
	items := decode[model.AchievementsResponse](t, raw).Achievements
	require.Len(t, items, 1)
	assert.Equal(t, "Mira", items[0].FullName)

	status, _ = h.do(t, http.MethodGet, "/api/dashboard/submissions", nil, student)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDashboardFilter(t *testing.T) {
	early := record("Early", model.CategoryAwards, 1)
	early.SubmissionDate = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	late := record("Late", model.CategoryInternships, 1)
	late.SubmissionDate = time.Date(2024, 2, 20, 23, 0, 0, 0, time.UTC)
	items := []model.Achievement{early, late}

	got := service.DashboardFilter(items, model.DashboardQuery{})
	require.Len(t, got, 2)
	assert.Equal(t, "Late", got[0].FullName, "newest first")

	got = service.DashboardFilter(items, model.DashboardQuery{From: "2024-01-01", To: "2024-02-20"})
	assert.Len(t, got, 2, "to is inclusive of the whole day")

	got = service.DashboardFilter(items, model.DashboardQuery{From: "2024-02-01"})
	require.Len(t, got, 1)
	assert.Equal(t, "Late", got[0].FullName)

	got = service.DashboardFilter(items, model.DashboardQuery{Search: "reg-early"})
	require.Len(t, got, 1)

	got = service.DashboardFilter(items, model.DashboardQuery{Category: model.CategoryInternships})
	require.Len(t, got, 1)
	assert.Equal(t, "Late", got[0].FullName)
}

func TestReview_SetStatus(t *testing.T) {
	a := record("Asha", model.CategoryAwards, 1)
	h := newHarness(t, a)
	path := "/api/dashboard/submissions/" + a.HexID() + "/status"

	status, _ := h.do(t, http.MethodPost, path, map[string]any{"status": "maybe"}, professor)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw := h.do(t, http.MethodPost, path, map[string]any{"status": "rejected", "title": "Reviewed"}, professor)
	require.Equal(t, http.StatusOK, status, string(raw))

	stored, err := h.store.FindByID(context.Background(), a.HexID())
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, stored.Status())
	assert.Equal(t, "Reviewed", stored.Title)

	projected, ok := h.board.Get(a.HexID())
	require.True(t, ok)
	assert.Equal(t, model.StatusRejected, projected.Status())

	h.notifier.Wait()
	sent := h.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, a.StudentMail, sent[0].To)
	assert.Equal(t, "Achievement Status", sent[0].Subject)

	status, _ = h.do(t, http.MethodPost, path, map[string]any{"status": "pending", "silent": true}, professor)
	require.Equal(t, http.StatusOK, status)
	stored, err = h.store.FindByID(context.Background(), a.HexID())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, stored.Status())

	h.notifier.Wait()
	assert.Len(t, h.mailer.Sent(), 1, "silent changes send nothing")
}

func TestReview_NotAssigned(t *testing.T) {
	a := record("Asha", model.CategoryAwards, 1)
	a.ProfessorEmail = "someone@gmail.com"
	h := newHarness(t, a)

	status, _ := h.do(t, http.MethodPost, "/api/dashboard/submissions/"+a.HexID()+"/status", map[string]any{"status": "approved"}, professor)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = h.do(t, http.MethodPost, "/api/dashboard/submissions/"+a.HexID()+"/status", map[string]any{"status": "approved"}, admin)
	assert.Equal(t, http.StatusOK, status, "admins review any submission")

	status, _ = h.do(t, http.MethodPost, "/api/dashboard/submissions/ffffffffffffffffffffffff/status", map[string]any{"status": "approved"}, professor)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestReview_Forward(t *testing.T) {
	a := record("Asha", model.CategoryAwards, 1)
	a.ProfessorName = "Dr. Rao"
	h := newHarness(t, a)

	status, raw := h.do(t, http.MethodPost, "/api/dashboard/submissions/"+a.HexID()+"/forward",
		map[string]any{"professorEmail": "Next@gmail.com", "message": "please review"}, professor)
	require.Equal(t, http.StatusOK, status, string(raw))

	stored, err := h.store.FindByID(context.Background(), a.HexID())
	require.NoError(t, err)
	assert.Equal(t, "next@gmail.com", stored.ProfessorEmail)

	h.notifier.Wait()
	sent := h.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "next@gmail.com", sent[0].To)
	assert.Contains(t, sent[0].Subject, "Dr. Rao")

	status, _ = h.do(t, http.MethodPost, "/api/dashboard/submissions/"+a.HexID()+"/forward",
		map[string]any{"professorEmail": "not-an-email"}, professor)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestReview_Remarks(t *testing.T) {
	a := record("Asha", model.CategoryAwards, 1)
	anon := record("Anon", model.CategoryAwards, 2)
	anon.StudentMail = ""
	h := newHarness(t, a, anon)

	status, _ := h.do(t, http.MethodPost, "/api/dashboard/submissions/"+anon.HexID()+"/remarks", map[string]any{"remarks": "fix it"}, professor)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw := h.do(t, http.MethodPost, "/api/dashboard/submissions/"+a.HexID()+"/remarks", map[string]any{"remarks": "fix it"}, professor)
	require.Equal(t, http.StatusOK, status, string(raw))

	stored, err := h.store.FindByID(context.Background(), a.HexID())
	require.NoError(t, err)
	assert.Equal(t, "fix it", stored.Remarks)

	h.notifier.Wait()
	sent := h.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, a.StudentMail, sent[0].To)
}
