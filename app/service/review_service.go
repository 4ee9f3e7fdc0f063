package service

import (
	"sort"
	"strings"
	"time"

	"fiber/wof/app/board"
	"fiber/wof/app/metrics"
	"fiber/wof/app/model"
	"fiber/wof/app/notify"
	"fiber/wof/app/repo"
	"fiber/wof/helper"
	"fiber/wof/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ReviewService backs the professor dashboard.
type ReviewService struct {
	repo     repo.AchievementRepository
	board    *board.Board
	notifier *notify.Notifier
	metrics  *metrics.Metrics
	settings Settings
	now      func() time.Time
}

func NewReviewService(repo repo.AchievementRepository, b *board.Board, n *notify.Notifier, m *metrics.Metrics, settings Settings) *ReviewService {
	return &ReviewService{repo: repo, board: b, notifier: n, metrics: m, settings: settings, now: time.Now}
}

// DashboardFilter narrows a professor's submissions by status, category,
// search text and an inclusive submission date range.
func DashboardFilter(items []model.Achievement, q model.DashboardQuery) []model.Achievement {
	var from, to time.Time
	if t, err := time.Parse("2006-01-02", q.From); err == nil {
		from = t
	}
	if t, err := time.Parse("2006-01-02", q.To); err == nil {
		to = t.AddDate(0, 0, 1)
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := []model.Achievement{}
	for _, a := range items {
		if q.Status != "" && q.Status != "all" && string(a.Status()) != q.Status {
			continue
		}
		if q.Category != "" && a.AchievementCategory != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.FullName), search) &&
			!strings.Contains(strings.ToLower(a.RegistrationNumber), search) {
			continue
		}
		if !from.IsZero() && a.SubmissionDate.Before(from) {
			continue
		}
		if !to.IsZero() && !a.SubmissionDate.Before(to) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmissionDate.After(out[j].SubmissionDate) })
	return out
}

// /api/dashboard/submissions
func (s *ReviewService) List(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFrom(c)

	var q model.DashboardQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query")
	}
	if err := helper.ValidateStruct(q); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	filter := model.AchievementFilter{Blacklist: model.MediaFields}
	if !middleware.IsAdmin(s.settings.AllowedAdmins, actor.Email) {
		filter.ProfessorEmail = actor.Email
	}
	items, err := s.repo.Find(c.UserContext(), filter)
	if err != nil {
		log.Error().Err(err).Str("professor", actor.Email).Msg("load dashboard")
		items = nil
	}
	return c.JSON(model.AchievementsResponse{Success: true, Achievements: DashboardFilter(items, q)})
}

// assigned loads the record and checks the caller may review it.
func (s *ReviewService) assigned(c *fiber.Ctx) (*model.Achievement, error) {
	actor, _ := middleware.ActorFrom(c)
	a, err := s.repo.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(a.ProfessorEmail, actor.Email) && !middleware.IsAdmin(s.settings.AllowedAdmins, actor.Email) {
		return nil, errForbidden
	}
	return a, nil
}

func (s *ReviewService) patch(c *fiber.Ctx, id string, fields model.Fields) error {
	if _, err := s.repo.Patch(c.UserContext(), id, fields); err != nil {
		return err
	}
	s.board.Apply(id, fields)
	return nil
}

// /api/dashboard/submissions/:id/status
func (s *ReviewService) SetStatus(c *fiber.Ctx) error {
	var req model.StatusChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}
	status, _ := model.ParseStatus(req.Status)

	a, err := s.assigned(c)
	if err != nil {
		return fail(c, err, "Failed to update status")
	}

	fields := model.Fields{"approved": nil}
	if t := model.ApprovedValue(status, s.now().UTC()); t != nil {
		fields["approved"] = *t
	}
	if req.Title != "" {
		fields["title"] = req.Title
		a.Title = req.Title
	}
	if req.Description != "" {
		fields["description"] = req.Description
		a.Description = req.Description
	}
	if err := s.patch(c, a.HexID(), fields); err != nil {
		return fail(c, err, "Failed to update status")
	}
	s.metrics.RecordStatusChange(c.UserContext(), string(status))

	if !req.Silent && status != model.StatusPending {
		s.notifier.Notify(notify.StatusMail(a.StudentMail, notify.StatusData{
			FullName:       a.FullName,
			Approved:       status == model.StatusApproved,
			Title:          a.Title,
			Description:    a.Description,
			ProfessorEmail: a.ProfessorEmail,
			ProfessorName:  a.ProfessorName,
		}))
	}

	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Status updated to " + string(status)})
}

// /api/dashboard/submissions/:id/forward
func (s *ReviewService) Forward(c *fiber.Ctx) error {
	var req model.ForwardRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	a, err := s.assigned(c)
	if err != nil {
		return fail(c, err, "Failed to forward submission")
	}

	to := strings.ToLower(strings.TrimSpace(req.ProfessorEmail))
	fields := model.Fields{"professorEmail": to}
	if req.ProfessorName != "" {
		fields["professorName"] = req.ProfessorName
	}
	if err := s.patch(c, a.HexID(), fields); err != nil {
		return fail(c, err, "Failed to forward submission")
	}

	from := a.ProfessorName
	if from == "" {
		from = a.ProfessorEmail
	}
	s.notifier.Notify(notify.ForwardMail(to, notify.ForwardData{
		FullName:      a.FullName,
		Title:         a.Title,
		FromProfessor: from,
		Message:       req.Message,
		DashboardURL:  s.settings.SiteURL + "/dashboard",
	}))

	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Submission forwarded to " + to})
}

// /api/dashboard/submissions/:id/remarks
func (s *ReviewService) Remarks(c *fiber.Ctx) error {
	var req model.RemarksRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	a, err := s.assigned(c)
	if err != nil {
		return fail(c, err, "Failed to send remarks")
	}
	if a.StudentMail == "" {
		return fail(c, model.NewValidationError("studentMail", "submission has no student email"), "")
	}

	if err := s.patch(c, a.HexID(), model.Fields{"remarks": req.Remarks}); err != nil {
		return fail(c, err, "Failed to send remarks")
	}
	s.notifier.Notify(notify.RemarksMail(a.StudentMail, notify.RemarksData{
		FullName:       a.FullName,
		Remarks:        req.Remarks,
		ProfessorEmail: a.ProfessorEmail,
	}))

	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Remarks sent"})
}
