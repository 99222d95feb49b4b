package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/dsocial118/SISOC-sub004/internal/audit"
)

const (
	QueueAuditoria = "jobs:auditoria"
	QueueEmail     = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EncolarAuditoria pushes an audit event job to Redis. The payload is an
// already-serializable audit event.
func (d *Dispatcher) EncolarAuditoria(ctx context.Context, ev audit.Evento) error {
	return d.enqueue(ctx, QueueAuditoria, "auditoria", ev)
}

// EnqueueEmail pushes a notification email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers groups the per-queue processors consumed by the pool.
type Handlers struct {
	Auditoria *AuditWorker
	Email     *EmailWorker
}

// Pool consumes the audit and email queues with a fixed number of goroutines.
type Pool struct {
	rdb      *redis.Client
	handlers Handlers
	wg       sync.WaitGroup
}

func NewPool(rdb *redis.Client, handlers Handlers) *Pool {
	return &Pool{rdb: rdb, handlers: handlers}
}

// Start launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.runWorker(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

// Drain waits for in-flight jobs to finish, up to timeout. Jobs still queued
// in Redis survive the restart untouched.
func (p *Pool) Drain(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		log.Info().Msg("worker pool drained")
	case <-time.After(timeout):
		log.Warn().Msg("worker pool drain timed out")
	}
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	defer p.wg.Done()
	queues := []string{QueueAuditoria, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch queue {
	case QueueAuditoria:
		if p.handlers.Auditoria != nil {
			p.handlers.Auditoria.Process(ctx, job.Payload)
		}
	case QueueEmail:
		if p.handlers.Email != nil {
			p.handlers.Email.Process(ctx, job.Payload)
		}
	default:
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("job from unknown queue dropped")
	}
}
