package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dsocial118/SISOC-sub004/internal/audit"
	"github.com/dsocial118/SISOC-sub004/internal/model"
	"github.com/dsocial118/SISOC-sub004/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func setupRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// stubHistorialRepo captures created rows in memory.
type stubHistorialRepo struct {
	mu     sync.Mutex
	filas  []*model.HistorialCambio
	fallar bool
}

func (r *stubHistorialRepo) Create(_ context.Context, h *model.HistorialCambio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fallar {
		return errors.New("db caida")
	}
	r.filas = append(r.filas, h)
	return nil
}

func (r *stubHistorialRepo) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.filas)
}

func (r *stubHistorialRepo) ListPorEntidad(_ context.Context, _ string, _ uuid.UUID, _, _ int) ([]model.HistorialCambio, int64, error) {
	return nil, 0, nil
}

var _ repository.HistorialRepository = (*stubHistorialRepo)(nil)

// ── Dispatcher ────────────────────────────────────────────────────────────────

func TestDispatcher_EnqueueAuditoria(t *testing.T) {
	rdb := setupRedis(t)
	d := NewDispatcher(rdb)
	ctx := context.Background()

	ev := audit.Evento{
		Registrado:  time.Now().UTC(),
		Accion:      model.AccionCrear,
		TipoEntidad: "admisiones.Admision",
		EntidadID:   uuid.New(),
		Diff:        map[string]any{"Estado": "borrador"},
	}
	require.NoError(t, d.EncolarAuditoria(ctx, ev))

	raw, err := rdb.RPop(ctx, QueueAuditoria).Result()
	require.NoError(t, err)

	var job Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	assert.Equal(t, "auditoria", job.Type)

	var decodificado audit.Evento
	require.NoError(t, json.Unmarshal(job.Payload, &decodificado))
	assert.Equal(t, ev.TipoEntidad, decodificado.TipoEntidad)
	assert.Equal(t, ev.EntidadID, decodificado.EntidadID)
}

func TestDispatcher_EnqueueEmail(t *testing.T) {
	rdb := setupRedis(t)
	d := NewDispatcher(rdb)
	ctx := context.Background()

	payload := EmailJobPayload{
		ToEmails: []string{"revisor@sisoc.gob.ar"},
		Subject:  "Informe enviado a revision",
		Body:     "Hay un informe pendiente.",
	}
	require.NoError(t, d.EnqueueEmail(ctx, payload))

	n, err := rdb.LLen(ctx, QueueEmail).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

// ── AuditWorker ───────────────────────────────────────────────────────────────

func TestAuditWorker_PersisteHistorial(t *testing.T) {
	rdb := setupRedis(t)
	repo := &stubHistorialRepo{}
	w := NewAuditWorker(repo, rdb)

	actor := uuid.New()
	ev := audit.Evento{
		Registrado:  time.Now().UTC(),
		ActorID:     &actor,
		Accion:      model.AccionActualizar,
		TipoEntidad: "informes.InformeTecnico",
		EntidadID:   uuid.New(),
		Diff:        map[string]any{"Estado": map[string]any{"old": "borrador", "new": "para_revision"}},
	}
	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	w.Process(context.Background(), raw)

	require.Len(t, repo.filas, 1)
	fila := repo.filas[0]
	assert.Equal(t, model.AccionActualizar, fila.Accion)
	assert.Equal(t, "informes.InformeTecnico", fila.TipoEntidad)
	assert.Equal(t, ev.EntidadID, fila.EntidadID)
	assert.Equal(t, &actor, fila.ActorID)
	assert.Contains(t, string(fila.Diff), "para_revision")

	n, _ := DLQLength(context.Background(), rdb, QueueAuditoria)
	assert.Zero(t, n)
}

func TestAuditWorker_PayloadInvalidoVaADLQ(t *testing.T) {
	rdb := setupRedis(t)
	repo := &stubHistorialRepo{}
	w := NewAuditWorker(repo, rdb)

	w.Process(context.Background(), json.RawMessage(`{no es json`))

	assert.Empty(t, repo.filas)
	n, err := DLQLength(context.Background(), rdb, QueueAuditoria)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAuditWorker_FallaDePersistenciaVaADLQ(t *testing.T) {
	rdb := setupRedis(t)
	repo := &stubHistorialRepo{fallar: true}
	w := NewAuditWorker(repo, rdb)

	ev := audit.Evento{Accion: model.AccionCrear, TipoEntidad: "comedores.Comedor", EntidadID: uuid.New()}
	raw, _ := json.Marshal(ev)
	w.Process(context.Background(), raw)

	n, _ := DLQLength(context.Background(), rdb, QueueAuditoria)
	assert.EqualValues(t, 1, n)

	entradaRaw, err := rdb.RPop(context.Background(), DLQPrefix+QueueAuditoria).Result()
	require.NoError(t, err)
	var entrada DLQEntry
	require.NoError(t, json.Unmarshal([]byte(entradaRaw), &entrada))
	assert.Equal(t, QueueAuditoria, entrada.OriginalQueue)
	assert.Contains(t, entrada.Reason, "persist failed")
}

// ── Pool ──────────────────────────────────────────────────────────────────────

func TestPool_ProcesaTrabajosEncolados(t *testing.T) {
	rdb := setupRedis(t)
	repo := &stubHistorialRepo{}
	d := NewDispatcher(rdb)
	pool := NewPool(rdb, Handlers{Auditoria: NewAuditWorker(repo, rdb)})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx, 1)

	ev := audit.Evento{Accion: model.AccionCrear, TipoEntidad: "comedores.Comedor", EntidadID: uuid.New()}
	require.NoError(t, d.EncolarAuditoria(ctx, ev))

	require.Eventually(t, func() bool { return repo.total() == 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	pool.Drain(2 * time.Second)
}
