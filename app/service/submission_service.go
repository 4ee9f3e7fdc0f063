package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"fiber/wof/app/board"
	"fiber/wof/app/metrics"
	"fiber/wof/app/model"
	"fiber/wof/app/notify"
	"fiber/wof/app/repo"
	"fiber/wof/helper"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

var basicFields = []string{
	"fullName", "registrationNumber", "mobileNumber", "studentMail",
	"userImage", "achievementCategory", "AchievementData",
}

type SubmissionService struct {
	repo     repo.AchievementRepository
	board    *board.Board
	notifier *notify.Notifier
	metrics  *metrics.Metrics
	settings Settings
}

func NewSubmissionService(repo repo.AchievementRepository, b *board.Board, n *notify.Notifier, m *metrics.Metrics, settings Settings) *SubmissionService {
	return &SubmissionService{repo: repo, board: b, notifier: n, metrics: m, settings: settings}
}

// /api/submitAchievement
func (s *SubmissionService) Submit(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Invalid form data")
	}

	value := func(name string) string {
		if v := form.Value[name]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}
	file := func(name string) *multipart.FileHeader {
		if f := form.File[name]; len(f) > 0 {
			return f[0]
		}
		return nil
	}

	for _, name := range basicFields {
		if value(name) == "" && file(name) == nil {
			return badRequest(c, "Missing required field: "+name)
		}
	}

	var data map[string]any
	if err := c.App().Config().JSONDecoder([]byte(value("AchievementData")), &data); err != nil || data == nil {
		return badRequest(c, "Invalid JSON format in AchievementData")
	}

	category := value("achievementCategory")
	if !model.IsCategory(category) {
		return badRequest(c, "Invalid achievement type: "+category)
	}
	if err := CheckCategoryFields(category, data); err != nil {
		return fail(c, err, "Failed to submit achievement")
	}

	if helper.ValidateVar(value("mobileNumber"), "mobile") != nil {
		return badRequest(c, "Invalid mobile number. It must be a valid 10-digit phone number.")
	}
	if helper.ValidateVar(value("studentMail"), "email") != nil {
		return badRequest(c, "Invalid student email address")
	}

	image := file("userImage")
	if image == nil {
		return badRequest(c, "Missing required field: userImage")
	}
	userImage, err := readMedia(image)
	if err != nil {
		return badRequest(c, "Could not read userImage")
	}

	a := model.Achievement{
		FullName:            value("fullName"),
		RegistrationNumber:  value("registrationNumber"),
		MobileNumber:        value("mobileNumber"),
		StudentMail:         strings.ToLower(value("studentMail")),
		AchievementCategory: category,
		UserImage:           userImage,
		Details:             map[string]any{},
		SubmissionDate:      time.Now().UTC(),
		Order:               model.IntPtr(model.DefaultOrder),
		ProfessorEmail:      value("professorEmail"),
		ProfessorName:       value("professorName"),
	}
	if a.ProfessorEmail == "" {
		a.ProfessorEmail = s.settings.DefaultProfessorEmail
	}
	if a.ProfessorName == "" {
		a.ProfessorName = s.settings.DefaultProfessorName
	}

	for _, field := range model.CategoryFields[category] {
		raw := data[field.Name]
		switch {
		case field.Name == "title":
			a.Title = fmt.Sprint(raw)
		case field.Name == "description":
			a.Description = fmt.Sprint(raw)
		case field.Type == model.FieldDocument:
			proof, err := documentMedia(field.Name, raw, file)
			if err != nil {
				return badRequest(c, "Could not read "+field.Name)
			}
			if proof == nil {
				a.Details[field.Name] = raw
				continue
			}
			a.CertificateProof = proof
		default:
			a.Details[field.Name] = raw
		}
	}

	id, err := s.repo.Create(c.UserContext(), &a)
	if err != nil {
		return fail(c, err, "Failed to submit achievement")
	}
	s.board.Upsert(a)
	s.metrics.RecordSubmission(c.UserContext(), category)

	s.notifier.Notify(notify.SubmissionMail(a.ProfessorEmail, notify.SubmissionData{
		ProfessorName:      a.ProfessorName,
		FullName:           a.FullName,
		RegistrationNumber: a.RegistrationNumber,
		MobileNumber:       a.MobileNumber,
		Category:           category,
		SubmissionDate:     a.SubmissionDate,
		DashboardURL:       s.settings.SiteURL + "/dashboard",
	}))

	return c.JSON(model.SubmitResponse{
		Success:    true,
		Message:    "Achievement submitted successfully",
		DocumentID: id,
	})
}

// CheckCategoryFields validates the category-specific part of a submission.
func CheckCategoryFields(category string, data map[string]any) error {
	for _, field := range model.CategoryFields[category] {
		raw, present := data[field.Name]
		if field.Required && (!present || isBlank(raw)) {
			return model.NewValidationError("", "Missing required field: "+field.Name)
		}
		s, isString := raw.(string)
		if field.Type == model.FieldOption && len(field.Options) > 0 && !contains(field.Options, s) {
			return model.NewValidationError(field.Name, "must be one of: "+strings.Join(field.Options, ", "))
		}
		if model.DateFields[field.Name] && isString && !helper.IsISODate(s) {
			return model.NewValidationError(field.Name, "must be a YYYY-MM-DD date")
		}
	}
	return nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// documentMedia resolves a document field to an uploaded file: a part named
// after the field, or the part its value names. No matching part yields nil.
func documentMedia(field string, raw any, file func(string) *multipart.FileHeader) (*model.Media, error) {
	if fh := file(field); fh != nil {
		return readMedia(fh)
	}
	if name, ok := raw.(string); ok {
		if fh := file(name); fh != nil {
			return readMedia(fh)
		}
	}
	return nil, nil
}

func readMedia(fh *multipart.FileHeader) (*model.Media, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	return &model.Media{Data: data, ContentType: fh.Header.Get("Content-Type")}, nil
}
