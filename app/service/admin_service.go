package service

import (
	"fiber/wof/app/board"
	"fiber/wof/app/model"
	"fiber/wof/app/ranking"
	"fiber/wof/helper"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// AdminService serves the admin board from the in-memory projection.
type AdminService struct {
	board *board.Board
}

func NewAdminService(b *board.Board) *AdminService {
	return &AdminService{board: b}
}

func validCategory(category string) bool {
	return category == "" || ranking.IsPseudoCategory(category) || model.IsCategory(category)
}

func (s *AdminService) view(c *fiber.Ctx) (string, []model.Achievement, error) {
	var q model.AdminViewQuery
	if err := c.QueryParser(&q); err != nil {
		return "", nil, model.NewValidationError("", "Invalid query")
	}
	if err := helper.ValidateStruct(q); err != nil {
		return "", nil, model.NewValidationError("", helper.FormatValidationErrors(err))
	}
	if !validCategory(q.Category) {
		return "", nil, model.NewValidationError("category", "unknown category "+q.Category)
	}
	if q.Category == "" {
		q.Category = ranking.CategoryAll
	}

	if q.Refresh {
		if err := s.board.Load(c.UserContext()); err != nil {
			log.Error().Err(err).Msg("refresh admin board")
		}
	}

	set := ranking.FilterSet{
		Pending:  ranking.Axis(q.Pending),
		Rejected: ranking.Axis(q.Rejected),
		Top10:    ranking.Axis(q.Top10),
	}
	return q.Category, ranking.Filter(s.board.Snapshot(), q.Category, q.Search, set), nil
}

// /api/admin/achievements
func (s *AdminService) View(c *fiber.Ctx) error {
	category, items, err := s.view(c)
	if err != nil {
		return fail(c, err, "Failed to load achievements")
	}
	return c.JSON(model.AdminViewResponse{
		Success:  true,
		Category: category,
		Count:    len(items),
		Items:    items,
		Sections: ranking.Group(items, category),
	})
}

// /api/admin/achievements/export
func (s *AdminService) Export(c *fiber.Ctx) error {
	_, items, err := s.view(c)
	if err != nil {
		return fail(c, err, "Failed to export achievements")
	}
	c.Attachment("achievements_export.json")
	return c.JSON(items)
}

// /api/admin/achievements/reorder
func (s *AdminService) Reorder(c *fiber.Ctx) error {
	var req model.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}
	if !validCategory(req.Category) {
		return badRequest(c, "Invalid category")
	}
	section, _ := ranking.ParseSection(req.Section)

	changes, err := s.board.Reorder(c.UserContext(), section, req.Category, req.IDs)
	if err != nil {
		return fail(c, err, "Failed to update order")
	}
	return c.JSON(reorderResponse(changes))
}

// /api/admin/achievements/move
func (s *AdminService) Move(c *fiber.Ctx) error {
	var req model.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}
	if !validCategory(req.Category) {
		return badRequest(c, "Invalid category")
	}
	section, _ := ranking.ParseSection(req.Section)

	changes, err := s.board.Move(c.UserContext(), section, req.Category, req.FromID, req.ToID)
	if err != nil {
		return fail(c, err, "Failed to update order")
	}
	return c.JSON(reorderResponse(changes))
}

func reorderResponse(changes []model.OrderChange) model.ReorderResponse {
	msg := "Order updated"
	if len(changes) == 0 {
		msg = "Order unchanged"
	}
	return model.ReorderResponse{Success: true, Message: msg, Changes: changes}
}

// /api/admin/achievements/:id/archive
func (s *AdminService) ToggleArchive(c *fiber.Ctx) error {
	a, err := s.board.ToggleArchive(c.Params("id"))
	if err != nil {
		return fail(c, err, "Failed to update archive status")
	}
	return c.JSON(toggleResponse(a))
}

// /api/admin/achievements/:id/top10
func (s *AdminService) ToggleTop10(c *fiber.Ctx) error {
	a, err := s.board.ToggleTop10(c.Params("id"))
	if err != nil {
		return fail(c, err, "Failed to update top 10 status")
	}
	return c.JSON(toggleResponse(a))
}

func toggleResponse(a model.Achievement) model.ToggleResponse {
	return model.ToggleResponse{
		Success:      true,
		ID:           a.HexID(),
		Archived:     a.Archived,
		OverAllTop10: a.OverAllTop10,
	}
}

// /api/admin/achievements/:id
func (s *AdminService) Edit(c *fiber.Ctx) error {
	var raw map[string]any
	if err := c.App().Config().JSONDecoder(c.Body(), &raw); err != nil {
		return badRequest(c, "Invalid JSON body")
	}
	delete(raw, "_id")
	if len(raw) == 0 {
		return badRequest(c, "No update fields provided")
	}

	fields, err := model.NormalizeFields(raw)
	if err != nil {
		return fail(c, err, "Failed to update achievement")
	}
	a, err := s.board.Edit(c.Params("id"), fields)
	if err != nil {
		return fail(c, err, "Failed to update achievement")
	}
	return c.JSON(model.SuccessResponse[model.Achievement]{
		Success: true,
		Message: "Achievement updated successfully",
		Data:    a,
	})
}

// /api/admin/refresh
func (s *AdminService) Refresh(c *fiber.Ctx) error {
	if err := s.board.Flush(c.UserContext()); err != nil {
		return fail(c, err, "Failed to refresh achievements")
	}
	if err := s.board.Load(c.UserContext()); err != nil {
		return fail(c, err, "Failed to refresh achievements")
	}
	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Achievements reloaded"})
}
