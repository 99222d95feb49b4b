package worker

// retry_cron.go
// Background goroutine that periodically re-attempts artifact rendering for
// informes that reached estado='validado' but whose PDF/DOCX build failed.
// Validation is never rolled back on a render failure, so these rows sit
// without an artifact until a retry succeeds.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	renderTickInterval = 60 * time.Second
	renderBatchSize    = 10
)

// ArtefactoReintentos is the slice of the informe service the cron needs:
// find validated informes without an artifact and rebuild them.
type ArtefactoReintentos interface {
	ReintentarArtefactos(ctx context.Context, limite int) (int, error)
}

// StartRenderRetryCron launches a goroutine that ticks every minute and
// rebuilds missing artifacts in small batches. It respects the context for
// graceful shutdown.
func StartRenderRetryCron(ctx context.Context, informes ArtefactoReintentos) {
	go func() {
		ticker := time.NewTicker(renderTickInterval)
		defer ticker.Stop()

		log.Info().Msg("render_retry: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("render_retry: shutting down")
				return
			case <-ticker.C:
				n, err := informes.ReintentarArtefactos(ctx, renderBatchSize)
				if err != nil {
					log.Error().Err(err).Msg("render_retry: batch failed")
					continue
				}
				if n > 0 {
					log.Info().Int("count", n).Msg("render_retry: artifacts rebuilt")
				}
			}
		}
	}()
}
