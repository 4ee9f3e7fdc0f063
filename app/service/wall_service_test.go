package service_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"fiber/wof/app/model"
	"fiber/wof/app/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWall(t *testing.T) {
	first := approved(record("First", model.CategoryAwards, 2))
	first.OverAllTop10 = true
	second := approved(record("Second", model.CategoryAwards, 1))
	second.OverAllTop10 = true
	plain := approved(record("Plain", model.CategoryAwards, 1))
	hidden := approved(record("Hidden", model.CategoryAwards, 3))
	hidden.Archived = true
	rejected := record("Rejected", model.CategoryAwards, 4)
	sentinel := model.RejectionSentinel
	rejected.Approved = &sentinel
	waiting := record("Waiting", model.CategoryAwards, 5)
	h := newHarness(t, first, second, plain, hidden, rejected, waiting)

	status, raw := h.do(t, http.MethodGet, "/api/wall", nil, "")
	require.Equal(t, http.StatusOK, status, string(raw))
	top := decode[model.AchievementsResponse](t, raw).Achievements
	require.Len(t, top, 2)
	assert.Equal(t, "Second", top[0].FullName)
	assert.Equal(t, "First", top[1].FullName)

	status, raw = h.do(t, http.MethodGet, "/api/wall?category=AWARDS", nil, "")
	require.Equal(t, http.StatusOK, status)
	awards := decode[model.AchievementsResponse](t, raw).Achievements
	names := make([]string, len(awards))
	for i, a := range awards {
		names[i] = a.FullName
		assert.Nil(t, a.CertificateProof)
	}
	assert.Equal(t, []string{"Second", "First", "Plain"}, names, "top 10 members lead, then by order")

	status, _ = h.do(t, http.MethodGet, "/api/wall?category=NOPE", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = h.do(t, http.MethodGet, "/api/wall?category="+url.QueryEscape(ranking.WallTop10), nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[model.AchievementsResponse](t, raw).Achievements, 2)
}

func TestWall_SlicesTopTenAfterSorting(t *testing.T) {
	var seed []model.Achievement
	for i := 12; i >= 1; i-- {
		a := approved(record("T", model.CategoryAwards, i))
		a.OverAllTop10 = true
		a.SubmissionDate = time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC)
		seed = append(seed, a)
	}
	h := newHarness(t, seed...)

	status, raw := h.do(t, http.MethodGet, "/api/wall", nil, "")
	require.Equal(t, http.StatusOK, status)
	top := decode[model.AchievementsResponse](t, raw).Achievements
	require.Len(t, top, model.Top10Capacity)
	for i, a := range top {
		assert.Equal(t, i+1, *a.Order)
	}
}
