package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fiber/wof/app/board"
	"fiber/wof/app/model"
	"fiber/wof/app/notify"
	"fiber/wof/app/repo"
	"fiber/wof/app/service"
	"fiber/wof/config"
	"fiber/wof/db"
	"fiber/wof/helper"
	"fiber/wof/route"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	student   = "stud@muj.manipal.edu"
	professor = "prof@gmail.com"
	admin     = "admin@gmail.com"
)

type harness struct {
	app      *fiber.App
	store    *repo.MemoryAchievementRepo
	board    *board.Board
	mailer   *notify.ConsoleMailer
	notifier *notify.Notifier
	auth     *repo.AuthRepo
}

func newHarness(t *testing.T, seed ...model.Achievement) *harness {
	t.Helper()
	config.Env.JWTSecret = "test-secret"

	store := repo.NewMemoryAchievementRepo(seed...)
	b := board.New(store, board.Options{Logger: zerolog.Nop()})
	require.NoError(t, b.Load(context.Background()))
	t.Cleanup(func() { _ = b.Close(context.Background()) })

	gdb, err := db.OpenSQL("file::memory:")
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	mailer := notify.NewConsoleMailer(zerolog.Nop())
	notifier := notify.NewNotifier(mailer, zerolog.Nop(), nil)
	auth := repo.NewAuthRepo(gdb)

	app := fiber.New()
	route.SetupRoutes(app, route.Deps{
		Achievements: store,
		Auth:         auth,
		Board:        b,
		Notifier:     notifier,
		Settings: service.Settings{
			SiteURL:               "http://wof.test",
			AllowedAdmins:         []string{"admin"},
			DefaultProfessorEmail: professor,
			DefaultProfessorName:  "Prof",
			TokenTTL:              time.Hour,
			OTPTTL:                5 * time.Minute,
		},
		StudentDomain:    "muj.manipal.edu",
		ProfessorDomains: []string{"gmail.com"},
	})

	return &harness{app: app, store: store, board: b, mailer: mailer, notifier: notifier, auth: auth}
}

func bearer(t *testing.T, email string) string {
	t.Helper()
	token, err := helper.GenerateToken(email, time.Hour)
	require.NoError(t, err)
	return token
}

// do sends body as JSON (or verbatim when it is a string) as the given user.
func (h *harness) do(t *testing.T, method, path string, body any, email string) (int, []byte) {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if email != "" {
		req.Header.Set("Authorization", "Bearer "+bearer(t, email))
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func record(name, category string, order int) model.Achievement {
	return model.Achievement{
		ID:                  primitive.NewObjectID(),
		FullName:            name,
		RegistrationNumber:  "REG-" + name,
		StudentMail:         strings.ToLower(name) + "@muj.manipal.edu",
		AchievementCategory: category,
		Title:               name + " title",
		SubmissionDate:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Order:               model.IntPtr(order),
		ProfessorEmail:      professor,
	}
}

func approved(a model.Achievement) model.Achievement {
	t := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	a.Approved = &t
	return a
}

func requireFlushed(t *testing.T, h *harness) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.board.Flush(ctx))
}
