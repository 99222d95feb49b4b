package worker

// email_worker.go
// Processes notification jobs from QueueEmail: informe submitted (to the
// reviewers) and informe a subsanar (back to the operator). Sends go through
// the circuit breaker so a downed relay fails fast instead of stalling the
// pool.

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dsocial118/SISOC-sub004/internal/infra"

	"github.com/redis/go-redis/v9"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmails []string `json:"to_emails"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	PDFPath  string   `json:"pdf_path,omitempty"`
}

// EmailWorker sends lifecycle notification emails.
type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, rdb: rdb}
}

// Process sends one notification email, optionally with a PDF attached.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if len(payload.ToEmails) == 0 {
		log.Warn().Msg("email_worker: empty recipient list — skipping")
		return
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendNotificacion(payload.ToEmails, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err != nil {
		log.Error().Err(err).Strs("to", payload.ToEmails).Msg("email_worker: failed to send email")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw, err.Error(), 1)
		return
	}
	log.Info().Strs("to", payload.ToEmails).Str("subject", payload.Subject).Msg("email_worker: notification sent")
}
