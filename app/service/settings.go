package service

import (
	"time"

	"fiber/wof/config"
)

// Settings are the configuration values the handlers read.
type Settings struct {
	SiteURL               string
	AllowedAdmins         []string
	DefaultProfessorEmail string
	DefaultProfessorName  string
	TokenTTL              time.Duration
	OTPTTL                time.Duration
	SecureCookie          bool
}

func SettingsFrom(env config.EnvConfig) Settings {
	return Settings{
		SiteURL:               env.SiteURL,
		AllowedAdmins:         env.AllowedAdmins,
		DefaultProfessorEmail: env.DefaultProfessorEmail,
		DefaultProfessorName:  env.DefaultProfessorName,
		TokenTTL:              env.TokenTTL,
		OTPTTL:                env.OTPTTL,
		SecureCookie:          env.Env != "local",
	}
}
