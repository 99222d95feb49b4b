package softdelete

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Signal identifies which lifecycle event an Event carries.
type Signal string

const (
	SignalBaja         Signal = "post_soft_delete"
	SignalRestauracion Signal = "post_restore"
)

// Event is emitted once per row actually flipped by the executor, after the
// backing updates committed.
type Event struct {
	Signal    Signal
	Instancia Entity
	Actor     *uuid.UUID
	Cascade   bool
	Root      Entity
}

// Bus is a minimal in-process observer list. Listener failures never abort
// the cascade that emitted the event; panics are recovered and logged, and
// listeners own their error handling and idempotency.
type Bus struct {
	mu        sync.RWMutex
	listeners []func(Event)
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

func (b *Bus) publish(ev Event) {
	b.mu.RLock()
	listeners := b.listeners
	b.mu.RUnlock()
	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Str("signal", string(ev.Signal)).
						Str("tipo", ev.Instancia.TypeKey()).
						Interface("panic", r).
						Msg("softdelete: listener panico")
				}
			}()
			fn(ev)
		}()
	}
}
