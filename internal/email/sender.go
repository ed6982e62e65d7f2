package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/wneessen/go-mail"
)

const pkg = "email/"

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers transactional mail over SMTP. Delivery is best-effort by
// contract: callers log failures and move on, a lost email never fails a
// lifecycle transition.
type Sender struct {
	log  *slog.Logger
	cfg  Config
	tmpl *template.Template
}

func New(log *slog.Logger, cfg Config) *Sender {
	return &Sender{
		log:  log,
		cfg:  cfg,
		tmpl: template.Must(template.New("signing").Parse(signingEmailHTML)),
	}
}

// Enabled reports whether SMTP is configured at all.
func (s *Sender) Enabled() bool {
	return s.cfg.Host != ""
}

// SendSigningRequest emails the recipient a link to review and sign a
// document.
func (s *Sender) SendSigningRequest(ctx context.Context, to, documentName, shareURL string) error {
	op := pkg + "SendSigningRequest"

	log := s.log.With(slog.String("op", op))

	if !s.Enabled() {
		log.Warn("smtp is not configured, skipping signing email", slog.String("to", to))
		return nil
	}

	var body bytes.Buffer

	err := s.tmpl.Execute(&body, map[string]string{
		"DocumentName": documentName,
		"ShareURL":     shareURL,
	})
	if err != nil {
		return fmt.Errorf("%s: render body: %w", op, err)
	}

	msg := mail.NewMsg()

	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg.Subject(fmt.Sprintf("Action required: please sign %q", documentName))
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("signing email sent", slog.String("to", to))

	return nil
}

const signingEmailHTML = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;font-family:sans-serif;background-color:#f9fafb;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;border:1px solid #e5e7eb;border-radius:8px;padding:32px;">
    <h1 style="font-size:20px;color:#111827;">Document ready for signing</h1>
    <p style="font-size:15px;color:#6b7280;line-height:1.6;">
      The document <strong style="color:#111827;">{{.DocumentName}}</strong>
      has been shared with you for signing. Please review and sign it at your
      earliest convenience.
    </p>
    <p style="margin:24px 0;">
      <a href="{{.ShareURL}}" style="display:inline-block;padding:12px 24px;background:#111827;color:#ffffff;border-radius:6px;text-decoration:none;font-weight:600;">
        Review &amp; sign
      </a>
    </p>
    <p style="font-size:13px;color:#9ca3af;">
      Or paste this link into your browser:<br>{{.ShareURL}}
    </p>
    <p style="font-size:12px;color:#9ca3af;">
      This link expires automatically. If you have questions, contact the sender directly.
    </p>
  </div>
</body>
</html>`
