package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"teamhub/config"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Welcome, {{.Name}}!</h2>
    </div>
    <p>Your account is ready. Create a team to start tracking tasks together.</p>
    <div class="footer">
        <p>© {{.Year}} {{.AppName}}. All rights reserved.</p>
    </div>
</body>
</html>`))

type welcomeData struct {
	Name    string
	AppName string
	Year    int
}

// Mailer sends transactional mail over SMTP
type Mailer struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

// NewMailer returns nil when SMTP is not configured
func NewMailer(cfg config.SMTPConfig) *Mailer {
	if !cfg.Enabled() {
		return nil
	}
	return &Mailer{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

// BuildWelcome renders the welcome message for a new account
func (m *Mailer) BuildWelcome(to, name string) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, welcomeData{
		Name:    name,
		AppName: m.fromName,
		Year:    time.Now().Year(),
	}); err != nil {
		return nil, fmt.Errorf("error executing template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Welcome to "+m.fromName)
	msg.SetBody("text/html", body.String())
	return msg, nil
}

func (m *Mailer) SendWelcome(to, name string) error {
	msg, err := m.BuildWelcome(to, name)
	if err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}
