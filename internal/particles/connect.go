package particles

import "math"

// Connection is a line between particles I and J, I < J.
type Connection struct {
	I, J     int
	Distance float64
	Alpha    float64
}

// Connections lists the lines Render draws for the current positions. Each
// particle takes the first MaxLinks later particles within LinkDistance in
// creation order. The cap only counts lines a particle starts, so one can
// still be the far end of any number of lines from earlier particles.
func (f *Field) Connections() []Connection {
	return connect(f.particles, LinkDistance, MaxLinks)
}

func connect(ps []Particle, maxDist float64, maxLinks int) []Connection {
	var out []Connection
	maxSq := maxDist * maxDist
	for i := range ps {
		links := 0
		for j := i + 1; j < len(ps) && links < maxLinks; j++ {
			dx := ps[i].X - ps[j].X
			dy := ps[i].Y - ps[j].Y
			distSq := dx*dx + dy*dy
			if distSq >= maxSq {
				continue
			}
			d := math.Sqrt(distSq)
			out = append(out, Connection{
				I:        i,
				J:        j,
				Distance: d,
				Alpha:    LinkAlpha * (1 - d/maxDist),
			})
			links++
		}
	}
	return out
}
