package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type EnvConfig struct {
	AppPort         string
	Env             string
	MongoURI        string
	MongoDB         string
	MongoCollection string
	DBDSN           string
	JWTSecret       string
	TokenTTL        time.Duration

	AllowedAdmins    []string
	SiteURL          string
	StudentDomain    string
	ProfessorDomains []string

	DefaultProfessorEmail string
	DefaultProfessorName  string

	MailDriver     string
	SendgridAPIKey string
	MailFrom       string
	MailFromName   string

	OTPTTL      time.Duration
	BodyLimitMB int
	SyncRetries int
	SyncBackoff time.Duration
}

var Env EnvConfig

func defaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("ENV", "local")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB_NAME", "Wall-Of-Fame")
	v.SetDefault("MONGO_COLLECTION", "achievers")
	v.SetDefault("DB_DSN", "file:wof.db")
	v.SetDefault("TOKEN_TTL_HOURS", 24*7)
	v.SetDefault("SITE_URL", "http://localhost:3000")
	v.SetDefault("STUDENT_DOMAIN", "muj.manipal.edu")
	v.SetDefault("PROFESSOR_DOMAINS", "gmail.com")
	v.SetDefault("MAIL_DRIVER", "console")
	v.SetDefault("MAIL_FROM_NAME", "Wall of Fame")
	v.SetDefault("OTP_TTL_MINUTES", 5)
	v.SetDefault("BODY_LIMIT_MB", 10)
	v.SetDefault("SYNC_RETRIES", 3)
	v.SetDefault("SYNC_BACKOFF_MS", 500)
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	Env = FromViper(v)

	if Env.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty, session tokens are not secure")
	}
}

// FromViper reads every key the service knows about from v.
func FromViper(v *viper.Viper) EnvConfig {
	return EnvConfig{
		AppPort:         v.GetString("APP_PORT"),
		Env:             v.GetString("ENV"),
		MongoURI:        v.GetString("MONGO_URI"),
		MongoDB:         v.GetString("MONGO_DB_NAME"),
		MongoCollection: v.GetString("MONGO_COLLECTION"),
		DBDSN:           v.GetString("DB_DSN"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		TokenTTL:        time.Duration(v.GetInt("TOKEN_TTL_HOURS")) * time.Hour,

		AllowedAdmins:    splitList(v.GetString("ALLOWED_ADMIN")),
		SiteURL:          strings.TrimRight(v.GetString("SITE_URL"), "/"),
		StudentDomain:    strings.ToLower(v.GetString("STUDENT_DOMAIN")),
		ProfessorDomains: splitList(strings.ToLower(v.GetString("PROFESSOR_DOMAINS"))),

		DefaultProfessorEmail: v.GetString("DEFAULT_PROFESSOR_EMAIL"),
		DefaultProfessorName:  v.GetString("DEFAULT_PROFESSOR_NAME"),

		MailDriver:     strings.ToLower(v.GetString("MAIL_DRIVER")),
		SendgridAPIKey: v.GetString("SENDGRID_API_KEY"),
		MailFrom:       v.GetString("MAIL_FROM"),
		MailFromName:   v.GetString("MAIL_FROM_NAME"),

		OTPTTL:      time.Duration(v.GetInt("OTP_TTL_MINUTES")) * time.Minute,
		BodyLimitMB: v.GetInt("BODY_LIMIT_MB"),
		SyncRetries: v.GetInt("SYNC_RETRIES"),
		SyncBackoff: time.Duration(v.GetInt("SYNC_BACKOFF_MS")) * time.Millisecond,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func GetJWTSecret() string {
	return Env.JWTSecret
}

// AdminDomains are the domains allowed onto the admin board: students and professors.
func (e EnvConfig) AdminDomains() []string {
	return append([]string{e.StudentDomain}, e.ProfessorDomains...)
}
