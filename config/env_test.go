package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	defaults(v)

	e := FromViper(v)
	assert.Equal(t, "3000", e.AppPort)
	assert.Equal(t, "Wall-Of-Fame", e.MongoDB)
	assert.Equal(t, "achievers", e.MongoCollection)
	assert.Equal(t, 5*time.Minute, e.OTPTTL)
	assert.Equal(t, 10, e.BodyLimitMB)
	assert.Equal(t, 3, e.SyncRetries)
	assert.Equal(t, "muj.manipal.edu", e.StudentDomain)
	assert.Equal(t, []string{"gmail.com"}, e.ProfessorDomains)
	assert.Empty(t, e.AllowedAdmins)
}

func TestFromViper_Lists(t *testing.T) {
	v := viper.New()
	defaults(v)
	v.Set("ALLOWED_ADMIN", " alice, bob ,,carol")
	v.Set("PROFESSOR_DOMAINS", "Gmail.com,faculty.example")
	v.Set("SITE_URL", "https://wof.example/")

	e := FromViper(v)
	assert.Equal(t, []string{"alice", "bob", "carol"}, e.AllowedAdmins)
	assert.Equal(t, []string{"gmail.com", "faculty.example"}, e.ProfessorDomains)
	assert.Equal(t, "https://wof.example", e.SiteURL)
	assert.Equal(t, []string{"muj.manipal.edu", "gmail.com", "faculty.example"}, e.AdminDomains())
}
