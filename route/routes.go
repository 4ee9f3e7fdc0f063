package route

import (
	"fiber/wof/app/board"
	"fiber/wof/app/metrics"
	"fiber/wof/app/notify"
	"fiber/wof/app/repo"
	"fiber/wof/app/service"
	"fiber/wof/middleware"

	"github.com/gofiber/fiber/v2"
)

// Deps are the collaborators the handlers are built from.
type Deps struct {
	Achievements repo.AchievementRepository
	Auth         repo.AuthRepository
	Board        *board.Board
	Notifier     *notify.Notifier
	Metrics      *metrics.Metrics
	Settings     service.Settings

	StudentDomain    string
	ProfessorDomains []string
}

func SetupRoutes(app *fiber.App, d Deps) {
	achievementService := service.NewAchievementService(d.Achievements, d.Board)
	submissionService := service.NewSubmissionService(d.Achievements, d.Board, d.Notifier, d.Metrics, d.Settings)
	adminService := service.NewAdminService(d.Board)
	wallService := service.NewWallService(d.Achievements)
	reviewService := service.NewReviewService(d.Achievements, d.Board, d.Notifier, d.Metrics, d.Settings)
	authService := service.NewAuthService(d.Auth, d.Notifier, d.Settings)
	mailService := service.NewMailService(d.Notifier)

	app.Get("/health", service.Health)

	api := app.Group("/api")
	api.Get("/wall", wallService.Wall)

	auth := api.Group("/auth")
	auth.Post("/generateOTP", authService.GenerateOTP)
	auth.Put("/verifyOTP", authService.VerifyOTP)
	auth.Post("/check-admin", authService.CheckAdmin)
	auth.Post("/decrypt", authService.Decrypt)

	authRequired := middleware.AuthRequired(d.Auth)
	staff := append([]string{d.StudentDomain}, d.ProfessorDomains...)

	auth.Post("/logout", authRequired, authService.Logout)

	api.Post("/submitAchievement", authRequired,
		middleware.DomainRequired("Only MUJ students are allowed to submit achievements.", d.StudentDomain),
		submissionService.Submit)
	api.Post("/sendMail", authRequired, mailService.Send)

	records := api.Group("/achievements", authRequired,
		middleware.DomainRequired("Access restricted.", staff...))
	records.Get("/", achievementService.List)
	records.Post("/", achievementService.Update)

	dashboard := api.Group("/dashboard", authRequired,
		middleware.DomainRequired("Only professors can access the dashboard.", d.ProfessorDomains...))
	dashboard.Get("/submissions", reviewService.List)
	dashboard.Post("/submissions/:id/status", reviewService.SetStatus)
	dashboard.Post("/submissions/:id/forward", reviewService.Forward)
	dashboard.Post("/submissions/:id/remarks", reviewService.Remarks)

	admin := api.Group("/admin", authRequired,
		middleware.DomainRequired("Access restricted.", staff...),
		middleware.AdminRequired(d.Settings.AllowedAdmins))
	admin.Get("/achievements", adminService.View)
	admin.Get("/achievements/export", adminService.Export)
	admin.Post("/achievements/reorder", adminService.Reorder)
	admin.Post("/achievements/move", adminService.Move)
	admin.Post("/achievements/:id/archive", adminService.ToggleArchive)
	admin.Post("/achievements/:id/top10", adminService.ToggleTop10)
	admin.Patch("/achievements/:id", adminService.Edit)
	admin.Post("/refresh", adminService.Refresh)
}
