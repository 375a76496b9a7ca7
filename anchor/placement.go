package anchor

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/marker-anchor/diag"
	"github.com/lixenwraith/marker-anchor/marker"
	"github.com/lixenwraith/marker-anchor/scene"
	"github.com/lixenwraith/marker-anchor/status"
	"github.com/lixenwraith/marker-anchor/vmath"
)

// Outcome is the placement branch taken for one detection
type Outcome uint8

const (
	OutcomePlaced Outcome = iota
	OutcomeAlreadyPlaced
	OutcomeUnmapped
	OutcomeNoSurface // Mapped, but withheld because the ray missed and hits are required
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeAlreadyPlaced:
		return "already_placed"
	case OutcomeUnmapped:
		return "unmapped"
	case OutcomeNoSurface:
		return "no_surface"
	default:
		return "unknown"
	}
}

// Placer anchors bound nodes once per payload and drives the debug visual
type Placer struct {
	registry *Registry
	ledger   *Ledger
	scene    *scene.Graph
	diag     *diag.Emitter

	minHeight   float64
	debugVisual scene.NodeID
	debugOffset float64
	requireHit  bool

	listeners []PlacementListener

	statPlaced  *atomic.Int64
	statDedup   *atomic.Int64
	statUnmap   *atomic.Int64
	statDebug   *atomic.Int64
	statPayload *status.AtomicString
}

// Apply runs placement for one detection and reports the branch taken
// The debug visual follows every detection that hit a surface, placed or not
func (p *Placer) Apply(det marker.Detection, pose Pose, hit bool, tick int64, now time.Time) Outcome {
	p.statPayload.Store(det.Payload)

	pose.Position = ClampHeight(pose.Position, p.minHeight)
	outcome := p.place(det.Payload, pose, hit, tick, now)

	if p.debugVisual != scene.NoNode && hit {
		up := vmath.V3FAdd(pose.Position, vmath.Vec3F{Y: p.debugOffset})
		if p.scene.SetPose(p.debugVisual, up, pose.Rotation) {
			p.scene.SetActive(p.debugVisual, true)
			p.statDebug.Add(1)
		}
	}
	return outcome
}

func (p *Placer) place(payload string, pose Pose, hit bool, tick int64, now time.Time) Outcome {
	if p.ledger.Has(payload) {
		p.statDedup.Add(1)
		p.diag.Info("skipped, already placed", "payload", payload)
		return OutcomeAlreadyPlaced
	}

	id, ok := p.registry.Lookup(payload)
	if !ok {
		p.statUnmap.Add(1)
		p.diag.Warn("unmapped marker", "payload", payload)
		return OutcomeUnmapped
	}

	node, alive := p.scene.Get(id)
	if !alive {
		// Host destroyed the bound node; nothing to anchor, keep the payload eligible
		p.statUnmap.Add(1)
		p.diag.Warn("unmapped marker, bound node is gone", "payload", payload, "node", uint64(id))
		return OutcomeUnmapped
	}

	if !hit && p.requireHit {
		p.diag.Warn("placement withheld, no surface hit", "payload", payload)
		return OutcomeNoSurface
	}

	p.scene.SetPose(id, pose.Position, pose.Rotation)
	p.scene.SetActive(id, true)
	p.ledger.Add(payload)
	p.statPlaced.Add(1)
	p.diag.Info("placed", "node", node.Name, "position", pose.Position.String())

	pl := Placement{
		ID:       uuid.NewString(),
		Payload:  payload,
		Node:     id,
		NodeName: node.Name,
		Pose:     pose,
		Hit:      hit,
		Frame:    tick,
		At:       now,
	}
	for _, fn := range p.listeners {
		fn(pl)
	}
	return OutcomePlaced
}
