// Package audit records every mutation of a tracked entity as an append-only
// HistorialCambio row. Services call the recorder explicitly at their commit
// points; cascade deletions arrive through the soft-delete signal bus. The
// actual DB write happens on the worker pool so requests never wait on it.
package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dsocial118/SISOC-sub004/internal/model"
	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// Evento is the queued form of one audit row.
type Evento struct {
	Registrado  time.Time      `json:"registrado"`
	ActorID     *uuid.UUID     `json:"actor_id,omitempty"`
	Accion      string         `json:"accion"`
	TipoEntidad string         `json:"tipo_entidad"`
	EntidadID   uuid.UUID      `json:"entidad_id"`
	Diff        map[string]any `json:"diff"`
}

// Encolador is the queue boundary; worker.Dispatcher satisfies it.
type Encolador interface {
	EncolarAuditoria(ctx context.Context, ev Evento) error
}

// Recorder enqueues audit events for every tracked entity type. Enqueue
// failures are logged and swallowed: auditing must never fail a request.
type Recorder struct {
	queue     Encolador
	ignorados map[string]bool
}

// NewRecorder builds a recorder that skips the given entity-type namespaces
// (e.g. "auth", "sesiones").
func NewRecorder(queue Encolador, namespacesIgnorados []string) *Recorder {
	ignorados := make(map[string]bool, len(namespacesIgnorados))
	for _, ns := range namespacesIgnorados {
		ignorados[strings.TrimSpace(ns)] = true
	}
	return &Recorder{queue: queue, ignorados: ignorados}
}

// Creacion records a full snapshot for a newly created entity.
func (r *Recorder) Creacion(ctx context.Context, actor *uuid.UUID, tipo string, id uuid.UUID, snapshot map[string]any) {
	r.encolar(ctx, Evento{
		Registrado:  time.Now().UTC(),
		ActorID:     actor,
		Accion:      model.AccionCrear,
		TipoEntidad: tipo,
		EntidadID:   id,
		Diff:        snapshot,
	})
}

// Actualizacion records the field-level diff between two snapshots. The diff
// keys are exactly the fields whose values changed.
func (r *Recorder) Actualizacion(ctx context.Context, actor *uuid.UUID, tipo string, id uuid.UUID, antes, despues map[string]any) {
	r.encolar(ctx, Evento{
		Registrado:  time.Now().UTC(),
		ActorID:     actor,
		Accion:      model.AccionActualizar,
		TipoEntidad: tipo,
		EntidadID:   id,
		Diff:        Diff(antes, despues),
	})
}

// Eliminacion records a full snapshot of the entity as it disappears.
func (r *Recorder) Eliminacion(ctx context.Context, actor *uuid.UUID, tipo string, id uuid.UUID, snapshot map[string]any) {
	r.encolar(ctx, Evento{
		Registrado:  time.Now().UTC(),
		ActorID:     actor,
		Accion:      model.AccionEliminar,
		TipoEntidad: tipo,
		EntidadID:   id,
		Diff:        snapshot,
	})
}

// ObservarCascada converts soft-delete signals back into audit rows: a baja
// is recorded as an elimination with full snapshot, a restauracion as an
// update of the envelope fields.
func (r *Recorder) ObservarCascada(ev softdelete.Event) {
	ctx := context.Background()
	tipo := ev.Instancia.TypeKey()
	switch ev.Signal {
	case softdelete.SignalBaja:
		r.Eliminacion(ctx, ev.Actor, tipo, ev.Instancia.PK(), Snapshot(ev.Instancia))
	case softdelete.SignalRestauracion:
		r.encolar(ctx, Evento{
			Registrado:  time.Now().UTC(),
			ActorID:     ev.Actor,
			Accion:      model.AccionActualizar,
			TipoEntidad: tipo,
			EntidadID:   ev.Instancia.PK(),
			// The envelope was already cleared when the signal fired; the
			// old timestamp lives in the matching elimination row.
			Diff: map[string]any{
				"DeletedAt":   map[string]any{"old": softdelete.ModoBajaLogica, "new": nil},
				"DeletedByID": map[string]any{"old": softdelete.ModoBajaLogica, "new": nil},
			},
		})
	}
}

func (r *Recorder) encolar(ctx context.Context, ev Evento) {
	ns, _, _ := strings.Cut(ev.TipoEntidad, ".")
	if r.ignorados[ns] {
		return
	}
	if err := r.queue.EncolarAuditoria(ctx, ev); err != nil {
		log.Error().
			Err(err).
			Str("tipo_entidad", ev.TipoEntidad).
			Str("accion", ev.Accion).
			Msg("audit: no se pudo encolar el evento")
	}
}
