package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamhub/config"
)

func TestNewMailer_DisabledWithoutSMTP(t *testing.T) {
	assert.Nil(t, NewMailer(config.SMTPConfig{}))
	assert.Nil(t, NewMailer(config.SMTPConfig{Host: "smtp.example.com"}))
}

func TestMailer_BuildWelcome(t *testing.T) {
	mailer := NewMailer(config.SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		FromEmail: "noreply@example.com",
		FromName:  "Teamhub",
	})
	require.NotNil(t, mailer)

	msg, err := mailer.BuildWelcome("a@x.com", "Ann <b>")
	require.NoError(t, err)

	assert.Equal(t, []string{"a@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Welcome to Teamhub"}, msg.GetHeader("Subject"))
	require.Len(t, msg.GetHeader("From"), 1)
	assert.Contains(t, msg.GetHeader("From")[0], "noreply@example.com")

	var raw bytes.Buffer
	_, err = msg.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "Content-Type: text/html")
	assert.NotContains(t, raw.String(), "Ann <b>")
}
