package worker

// audit_worker.go
// Processes audit jobs from QueueAuditoria: decodes the queued event and
// appends one HistorialCambio row. Persistence failures go to the DLQ so the
// trail can be replayed; the row itself is never mutated afterwards.

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dsocial118/SISOC-sub004/internal/audit"
	"github.com/dsocial118/SISOC-sub004/internal/model"
	"github.com/dsocial118/SISOC-sub004/internal/repository"

	"github.com/redis/go-redis/v9"
)

// AuditWorker persists queued audit events.
type AuditWorker struct {
	historial repository.HistorialRepository
	rdb       *redis.Client
}

func NewAuditWorker(historial repository.HistorialRepository, rdb *redis.Client) *AuditWorker {
	return &AuditWorker{historial: historial, rdb: rdb}
}

// Process appends one history row for the queued event.
func (w *AuditWorker) Process(ctx context.Context, raw json.RawMessage) {
	var ev audit.Evento
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Error().Err(err).Msg("audit_worker: invalid payload")
		SendToDLQ(ctx, w.rdb, QueueAuditoria, "auditoria", raw, "invalid payload: "+err.Error(), 1)
		return
	}

	diff, err := json.Marshal(ev.Diff)
	if err != nil {
		log.Error().Err(err).Str("tipo", ev.TipoEntidad).Msg("audit_worker: diff not serializable")
		SendToDLQ(ctx, w.rdb, QueueAuditoria, "auditoria", raw, "diff not serializable: "+err.Error(), 1)
		return
	}

	fila := &model.HistorialCambio{
		Registrado:  ev.Registrado,
		ActorID:     ev.ActorID,
		Accion:      ev.Accion,
		TipoEntidad: ev.TipoEntidad,
		EntidadID:   ev.EntidadID,
		Diff:        diff,
	}
	if err := w.historial.Create(ctx, fila); err != nil {
		log.Error().Err(err).
			Str("tipo", ev.TipoEntidad).
			Str("entidad_id", ev.EntidadID.String()).
			Msg("audit_worker: failed to persist history row")
		SendToDLQ(ctx, w.rdb, QueueAuditoria, "auditoria", raw, "persist failed: "+err.Error(), 1)
		return
	}

	log.Debug().
		Str("accion", ev.Accion).
		Str("tipo", ev.TipoEntidad).
		Str("entidad_id", ev.EntidadID.String()).
		Msg("audit_worker: history row persisted")
}
