package service

import (
	"fmt"

	"nairatrack/config"

	"gopkg.in/gomail.v2"
)

// EmailService sends notification mail over SMTP. All sends are no-ops when
// the email section is disabled.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates the email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendExportReady notifies a user that their export finished and where to
// download it.
func (s *EmailService) SendExportReady(toEmail, firstName, downloadURL string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email service disabled, set email.enabled=true")
	}

	subject := "[NairaTrack] Your export is ready"
	body := s.generateExportReadyBody(firstName, downloadURL)

	return s.sendEmail(toEmail, subject, body)
}

func (s *EmailService) generateExportReadyBody(firstName, downloadURL string) string {
	if firstName == "" {
		firstName = "there"
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; }
        .header { background: linear-gradient(135deg, #16a34a, #15803d); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .btn { display: inline-block; background: linear-gradient(135deg, #16a34a, #15803d); color: white !important; text-decoration: none; padding: 14px 40px; border-radius: 8px; font-weight: 600; margin: 20px 0; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
        .link { word-break: break-all; color: #16a34a; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 NairaTrack</h1>
        </div>
        <div class="content">
            <p>Hi <strong>%s</strong>,</p>
            <p>Your transaction export has finished. Click below to download it:</p>
            <p style="text-align: center;">
                <a href="%s" class="btn">Download export</a>
            </p>
            <p>If the button does not work, copy this link into your browser:</p>
            <p class="link">%s</p>
            <p>The link expires in 24 hours.</p>
        </div>
        <div class="footer">
            <p>This email was sent automatically, please do not reply.</p>
            <p>© NairaTrack — your personal finance companion</p>
        </div>
    </div>
</body>
</html>
`, firstName, downloadURL, downloadURL)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
