package pick

import "github.com/san-kum/hopfviz/internal/hopf"

// Gate decides whether a pointer-up should act as a pick. A drag that moved
// the pointer is treated as a camera gesture unless the minimap is locked.
type Gate struct {
	locked bool
	down   hopf.Point3
}

// NewGate returns a gate with the minimap locked.
func NewGate() *Gate { return &Gate{locked: true} }

// Down records where the pointer was pressed.
func (g *Gate) Down(x, y float64) { g.down = hopf.Point3{X: x, Y: y} }

// Allow reports whether a pointer event at (x, y) may pick.
func (g *Gate) Allow(x, y float64) bool {
	return g.locked || hopf.IsEqual(hopf.Point3{X: x, Y: y}, g.down)
}

func (g *Gate) SetLocked(locked bool) { g.locked = locked }
func (g *Gate) Locked() bool          { return g.locked }
