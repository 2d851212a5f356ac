package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/saifauto_test?sslmode=disable")
	t.Setenv("PORT", "")
	t.Setenv("RULES_PHRASE", "")
	t.Setenv("SENDGRID_FROM_NAME", "")
	t.Setenv("AWS_REGION", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "I AGREE", cfg.RulesPhrase)
	assert.Equal(t, "Saif Auto", cfg.Email.FromName)
	assert.Equal(t, "eu-west-3", cfg.Storage.Region)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/saifauto_test?sslmode=disable")
	t.Setenv("PORT", "9090")
	t.Setenv("RULES_PHRASE", "j'accepte")
	t.Setenv("TWILIO_STAFF_NUMBER", "+212600000000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "j'accepte", cfg.RulesPhrase)
	assert.Equal(t, "+212600000000", cfg.Message.StaffNumber)
}

func TestEmailConfigMissing(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"SENDGRID_API_KEY", "SENDGRID_FROM_EMAIL"},
		EmailConfig{}.Missing())

	assert.Equal(t,
		[]string{"SENDGRID_FROM_EMAIL"},
		EmailConfig{APIKey: "SG.key"}.Missing())

	assert.Empty(t, EmailConfig{APIKey: "SG.key", FromEmail: "noreply@saifauto.test"}.Missing())
}

func TestMessageConfigMissing(t *testing.T) {
	assert.Len(t, MessageConfig{}.Missing(), 4)

	full := MessageConfig{
		AccountSID:  "AC1",
		AuthToken:   "tok",
		FromNumber:  "+15550001",
		StaffNumber: "+212600000000",
	}
	assert.Empty(t, full.Missing())

	partial := full
	partial.StaffNumber = ""
	assert.Equal(t, []string{"TWILIO_STAFF_NUMBER"}, partial.Missing())
}

func TestMissingErrorNamesVariables(t *testing.T) {
	err := MissingError([]string{"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN"})
	assert.EqualError(t, err, "missing required environment variables: TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN")
}
