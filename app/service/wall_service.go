package service

import (
	"fiber/wof/app/model"
	"fiber/wof/app/ranking"
	"fiber/wof/app/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type WallService struct {
	repo repo.AchievementRepository
}

func NewWallService(repo repo.AchievementRepository) *WallService {
	return &WallService{repo: repo}
}

// /api/wall
func (s *WallService) Wall(c *fiber.Ctx) error {
	category := c.Query("category", ranking.WallTop10)
	if category != ranking.WallTop10 && !model.IsCategory(category) {
		return badRequest(c, "Invalid achievement type: "+category)
	}

	items, err := s.repo.Find(c.UserContext(), ranking.WallFilter(category))
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("load wall")
		items = nil
	}
	return c.JSON(model.AchievementsResponse{Success: true, Achievements: ranking.Wall(items, category)})
}
