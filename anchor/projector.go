package anchor

import (
	"github.com/lixenwraith/marker-anchor/diag"
	"github.com/lixenwraith/marker-anchor/vmath"
)

// Centroid averages marker corners and flips Y into projection space
// Zero corners yield the origin
func Centroid(corners []vmath.Vec2F, height int) vmath.Vec2I {
	mean, ok := vmath.Mean2F(corners)
	if !ok {
		return vmath.Vec2I{}
	}
	return vmath.Vec2I{
		X: vmath.RoundToInt(mean.X),
		Y: height - vmath.RoundToInt(mean.Y),
	}
}

// Projector turns marker corners into a world ray
type Projector struct {
	projection Projection
	diag       *diag.Emitter
}

func NewProjector(p Projection, d *diag.Emitter) *Projector {
	return &Projector{projection: p, diag: d}
}

// Project returns the flipped centroid and its world ray
func (p *Projector) Project(corners []vmath.Vec2F, height int) (vmath.Vec2I, Ray) {
	centre := Centroid(corners, height)
	ray := p.projection.ImagePointToWorldRay(centre)
	p.diag.Debug("marker ray",
		"centre", centre.String(),
		"origin", ray.Origin.String(),
		"direction", ray.Direction.String(),
	)
	return centre, ray
}
