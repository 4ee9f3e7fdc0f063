package service

import (
	"context"
	"fmt"
	"strings"

	"fiber/wof/app/board"
	"fiber/wof/app/model"
	"fiber/wof/app/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// AchievementService is the raw record endpoint the dashboards read and patch through.
type AchievementService struct {
	repo  repo.AchievementRepository
	board *board.Board
}

func NewAchievementService(repo repo.AchievementRepository, b *board.Board) *AchievementService {
	return &AchievementService{repo: repo, board: b}
}

// ListFilter reads the store filter from the query string. Unparseable
// approval dates are ignored.
func ListFilter(c *fiber.Ctx) model.AchievementFilter {
	args := c.Context().QueryArgs()
	f := model.AchievementFilter{
		ID:             c.Query("_id"),
		Category:       c.Query("achievementCategory"),
		ProfessorEmail: c.Query("professorEmail"),
		Whitelist:      splitFields(c.Query("whitelist")),
		Blacklist:      splitFields(c.Query("blacklist")),
	}
	if args.Has("archived") {
		f.Archived = model.BoolPtr(c.Query("archived") == "true")
	}
	if v := c.Query("approved"); v != "" {
		if t, err := model.ParseApproved(v); err == nil && t != nil {
			f.ApprovedFrom = t
		}
	}
	return f
}

func splitFields(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// /api/achievements
func (s *AchievementService) List(c *fiber.Ctx) error {
	items, err := s.repo.Find(c.UserContext(), ListFilter(c))
	if err != nil {
		return fail(c, err, "Failed to fetch achievements")
	}
	return c.JSON(model.AchievementsResponse{Success: true, Achievements: items})
}

// /api/achievements
func (s *AchievementService) Update(c *fiber.Ctx) error {
	var body any
	if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
		return badRequest(c, "Invalid JSON body")
	}

	switch v := body.(type) {
	case []any:
		return s.updateBatch(c, v)
	case map[string]any:
		return s.updateOne(c, v)
	}
	return badRequest(c, "Body must be an object or an array")
}

// splitID separates the record id from the fields of one raw patch.
func splitID(raw map[string]any) (string, map[string]any) {
	id, _ := raw["_id"].(string)
	rest := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "_id" {
			rest[k] = v
		}
	}
	return strings.TrimSpace(id), rest
}

func (s *AchievementService) updateOne(c *fiber.Ctx, raw map[string]any) error {
	id, rest := splitID(raw)
	if id == "" {
		return badRequest(c, "Missing required field: _id")
	}
	if len(rest) == 0 {
		return badRequest(c, "No update fields provided")
	}

	fields, err := model.NormalizeFields(rest)
	if err != nil {
		return fail(c, err, "Failed to update achievement")
	}

	item := model.PatchItem{ID: id, Fields: fields}
	if err := s.checkTop10(c.UserContext(), []model.PatchItem{item}); err != nil {
		return fail(c, err, "Failed to update achievement")
	}

	modified, err := s.repo.Patch(c.UserContext(), id, fields)
	if err != nil {
		return fail(c, err, "Failed to update achievement")
	}
	s.board.Apply(id, fields)

	return c.JSON(model.UpdateResponse{
		Success:       true,
		Message:       "Achievement updated successfully",
		ModifiedCount: modified,
	})
}

func (s *AchievementService) updateBatch(c *fiber.Ctx, raws []any) error {
	if len(raws) == 0 {
		return badRequest(c, "Empty array provided")
	}

	var invalid []string
	items := make([]model.PatchItem, 0, len(raws))
	for i, r := range raws {
		obj, ok := r.(map[string]any)
		if !ok {
			invalid = append(invalid, fmt.Sprint(i))
			continue
		}
		id, rest := splitID(obj)
		if id == "" || len(rest) == 0 {
			invalid = append(invalid, fmt.Sprint(i))
			continue
		}
		fields, err := model.NormalizeFields(rest)
		if err != nil {
			return badRequest(c, fmt.Sprintf("invalid item at index %d: %s", i, err.Error()))
		}
		items = append(items, model.PatchItem{ID: id, Fields: fields})
	}
	if len(invalid) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "Invalid items in batch update",
			Error:   "invalid items at index " + strings.Join(invalid, ", "),
		})
	}

	if err := s.checkTop10(c.UserContext(), items); err != nil {
		return fail(c, err, "Failed to update achievement")
	}

	res, err := s.repo.BatchPatch(c.UserContext(), items)
	if err != nil {
		return fail(c, err, "Failed to update achievement")
	}
	for _, it := range items {
		s.board.Apply(it.ID, it.Fields)
	}

	return c.JSON(model.BatchUpdateResponse{
		Success:     true,
		Message:     "Batch update completed",
		BatchResult: res,
	})
}

// checkTop10 rejects patches that would leave more than model.Top10Capacity
// records flagged overAllTop10. The last patch of an id decides its flag.
func (s *AchievementService) checkTop10(ctx context.Context, items []model.PatchItem) error {
	flags := make(map[string]bool)
	adding := false
	for _, it := range items {
		if top, ok := it.Fields["overAllTop10"].(bool); ok {
			flags[it.ID] = top
		}
	}
	for _, top := range flags {
		adding = adding || top
	}
	if !adding {
		return nil
	}

	n, err := s.repo.CountTop10(ctx)
	if err != nil {
		return err
	}
	for id, top := range flags {
		cur, err := s.repo.FindByID(ctx, id)
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		switch {
		case top && !cur.OverAllTop10:
			n++
		case !top && cur.OverAllTop10:
			n--
		}
	}
	if n > model.Top10Capacity {
		return model.ErrCapacityExceeded
	}
	return nil
}
