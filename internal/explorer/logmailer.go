package explorer

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer satisfies Mailer by logging the message instead of sending it,
// so a local skms install can exercise register/login's verification-code
// flow without an SMTP relay configured. An operator standing up a real
// deployment substitutes a Mailer backed by a real transport.
type LogMailer struct {
	Log *zap.SugaredLogger
}

func (m LogMailer) SendMail(ctx context.Context, to, subject, body string) error {
	m.Log.Infow("mail", "to", to, "subject", subject, "body", body)
	return nil
}
