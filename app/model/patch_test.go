package model_test

import (
	"testing"
	"time"

	"fiber/wof/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFields(t *testing.T) {
	t.Run("coerces approved and order", func(t *testing.T) {
		f, err := model.NormalizeFields(map[string]any{
			"approved": "2024-01-02T03:04:05Z",
			"order":    float64(3),
			"archived": true,
		})
		require.NoError(t, err)

		approved, ok := f["approved"].(time.Time)
		require.True(t, ok)
		assert.Equal(t, 2024, approved.Year())
		assert.Equal(t, 3, f["order"])
		assert.Equal(t, true, f["archived"])
	})

	t.Run("null approved resets to pending", func(t *testing.T) {
		f, err := model.NormalizeFields(map[string]any{"approved": nil})
		require.NoError(t, err)
		v, present := f["approved"]
		assert.True(t, present)
		assert.Nil(t, v)
	})

	t.Run("drops client-only and immutable keys", func(t *testing.T) {
		f, err := model.NormalizeFields(map[string]any{
			"_id":            "abc",
			"imageUrl":       "data:...",
			"submissionDate": "2024-01-01",
			"title":          "New title",
		})
		require.NoError(t, err)
		assert.Equal(t, model.Fields{"title": "New title"}, f)
	})

	t.Run("empty is a validation error", func(t *testing.T) {
		_, err := model.NormalizeFields(map[string]any{"_id": "abc"})
		assert.True(t, model.IsValidation(err))

		_, err = model.NormalizeFields(map[string]any{})
		assert.True(t, model.IsValidation(err))
	})

	t.Run("rejects wrong types", func(t *testing.T) {
		_, err := model.NormalizeFields(map[string]any{"order": 1.5})
		assert.True(t, model.IsValidation(err))

		_, err = model.NormalizeFields(map[string]any{"archived": "yes"})
		assert.True(t, model.IsValidation(err))

		_, err = model.NormalizeFields(map[string]any{"achievementCategory": "GAMING"})
		assert.True(t, model.IsValidation(err))
	})
}

func TestApplyFields(t *testing.T) {
	a := model.Achievement{Title: "Old", Order: model.IntPtr(2)}

	changed := model.ApplyFields(&a, model.Fields{"title": "New", "order": 5, "overAllTop10": true})
	assert.True(t, changed)
	assert.Equal(t, "New", a.Title)
	assert.Equal(t, 5, *a.Order)
	assert.True(t, a.OverAllTop10)

	changed = model.ApplyFields(&a, model.Fields{"title": "New"})
	assert.False(t, changed)

	model.ApplyFields(&a, model.Fields{"approved": model.RejectionSentinel})
	assert.Equal(t, model.StatusRejected, a.Status())

	model.ApplyFields(&a, model.Fields{"approved": nil})
	assert.Equal(t, model.StatusPending, a.Status())
}

func TestProject(t *testing.T) {
	a := model.Achievement{
		FullName:  "John Doe",
		Title:     "Gold",
		UserImage: &model.Media{Data: []byte{1}, ContentType: "image/png"},
	}

	p := model.Project(a, nil, model.MediaFields)
	assert.Equal(t, "John Doe", p.FullName)
	assert.Nil(t, p.UserImage)

	p = model.Project(a, []string{"title", "userImage"}, nil)
	assert.Empty(t, p.FullName)
	assert.Equal(t, "Gold", p.Title)
	assert.NotNil(t, p.UserImage)

	p = model.Project(a, []string{"title", "userImage"}, []string{"userImage"})
	assert.Equal(t, "Gold", p.Title)
	assert.Nil(t, p.UserImage)
}
