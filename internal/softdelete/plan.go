package softdelete

import (
	"github.com/google/uuid"
)

// Operation tags a plan with its intent; a plan built for one operation can
// never be executed as the other.
type Operation string

const (
	OpEliminar  Operation = "eliminar"
	OpRestaurar Operation = "restaurar"
)

// Mode is how a node will be touched: soft flips the envelope, hard removes
// the row physically.
type Mode string

const (
	ModeSoft Mode = "soft"
	ModeHard Mode = "hard"
)

// NodeKey identifies a node by (type key, primary key).
type NodeKey struct {
	Tipo string
	ID   uuid.UUID
}

// Node is one planned row: the in-memory instance, the deletion mode and the
// maximum depth at which the walk reached it.
type Node struct {
	Instancia Entity
	Mode      Mode
	Depth     int
}

// Plan is the transient decision record of a cascade: which rows will be
// touched, how, and for which operation. It is a plain value, never shared
// across transactions.
type Plan struct {
	Operation Operation
	Root      NodeKey
	// Cascade is false for single-row plans built by the no-cascade paths.
	Cascade bool

	nodes map[NodeKey]*Node
	order []NodeKey
}

func newPlan(op Operation) *Plan {
	return &Plan{Operation: op, Cascade: true, nodes: make(map[NodeKey]*Node)}
}

func (p *Plan) get(key NodeKey) *Node { return p.nodes[key] }

func (p *Plan) put(key NodeKey, node *Node) {
	if _, seen := p.nodes[key]; !seen {
		p.order = append(p.order, key)
	}
	p.nodes[key] = node
}

// Len returns the number of planned nodes.
func (p *Plan) Len() int { return len(p.nodes) }

// Empty reports whether the plan touches nothing.
func (p *Plan) Empty() bool { return len(p.nodes) == 0 }

// Node returns the planned node for key, or nil.
func (p *Plan) Node(key NodeKey) *Node { return p.nodes[key] }

// Walk visits every node in insertion order. Signals and summaries follow
// this order, so it is stable for a given walk.
func (p *Plan) Walk(fn func(key NodeKey, node *Node)) {
	for _, key := range p.order {
		fn(key, p.nodes[key])
	}
}
