// Package delivery is the delivery-robot map as a search problem: a robot
// walks a rectangular map of tiles to the package destination.
//
// Map text uses one character per tile:
//
//	.  passable
//	#  impassable
//	!  hazardous: the robot gets stuck and loses a turn
//	*  the robot's start (passable)
//	@  the package destination (passable)
//
// Portals link two tiles; stepping onto one end puts the robot on the other.
package delivery

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"explore/maze"
	"explore/searcher"
	"explore/utils"
)

var (
	ErrRaggedMap          = errors.New("delivery: rows differ in width")
	ErrEmptyMap           = errors.New("delivery: no tiles")
	ErrBadTile            = errors.New("delivery: unknown tile")
	ErrMissingStart       = errors.New("delivery: map needs exactly one robot start")
	ErrMissingDestination = errors.New("delivery: map needs exactly one destination")
	ErrBadPortal          = errors.New("delivery: invalid portal")
	ErrBadHazardCost      = errors.New("delivery: hazard cost must be at least 1")
)

type Coord = maze.Coord

type Tile byte

const (
	Passable    Tile = '.'
	Impassable  Tile = '#'
	Hazardous   Tile = '!'
	Start       Tile = '*'
	Destination Tile = '@'
)

// SimpleMap is a small map with a hazard on the short way round.
const SimpleMap = `
@...
!##.
...*`

// DefaultHazardCost charges the move onto a hazard plus the turn lost there.
const DefaultHazardCost = 2.0

// Portal links two tiles in both directions.
type Portal struct {
	A Coord
	B Coord
}

// ParsePortal reads "r,c:r,c".
func ParsePortal(text string) (Portal, error) {
	a, b, ok := strings.Cut(text, ":")
	if !ok {
		return Portal{}, fmt.Errorf("%w: %q, want r,c:r,c", ErrBadPortal, text)
	}
	from, err := maze.ParseCoord(a)
	if err != nil {
		return Portal{}, fmt.Errorf("%w: %w", ErrBadPortal, err)
	}
	to, err := maze.ParseCoord(b)
	if err != nil {
		return Portal{}, fmt.Errorf("%w: %w", ErrBadPortal, err)
	}
	return Portal{A: from, B: to}, nil
}

type Option func(o *options)

type options struct {
	portals    []Portal
	hazardCost float64
}

func WithPortals(portals ...Portal) Option {
	return func(o *options) {
		o.portals = append(o.portals, portals...)
	}
}

// WithHazardCost sets the cost of stepping onto a hazardous tile.
func WithHazardCost(cost float64) Option {
	return func(o *options) {
		o.hazardCost = cost
	}
}

// Map implements searcher.Problem and searcher.Heuristic.
type Map struct {
	tiles      [][]Tile
	start      Coord
	dest       Coord
	portals    map[Coord]Coord
	hazardCost float64
	// relaxed holds, for every portal end, the cheapest cost to the
	// destination when walls and hazards are ignored.
	relaxed map[Coord]float64
}

var (
	_ searcher.Problem[Coord]   = (*Map)(nil)
	_ searcher.Heuristic[Coord] = (*Map)(nil)
)

func Parse(text string, opts ...Option) (*Map, error) {
	o := options{hazardCost: DefaultHazardCost} // Default values
	for _, opt := range opts {
		opt(&o)
	}
	if o.hazardCost < 1 {
		return nil, fmt.Errorf("%w: got %v", ErrBadHazardCost, o.hazardCost)
	}

	text = strings.Trim(text, "\r\n")
	if text == "" {
		return nil, ErrEmptyMap
	}
	m := &Map{hazardCost: o.hazardCost, portals: map[Coord]Coord{}}
	starts, dests := 0, 0
	for r, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if r > 0 && len(line) != len(m.tiles[0]) {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrRaggedMap, r, len(line), len(m.tiles[0]))
		}
		row := make([]Tile, len(line))
		for c := range len(line) {
			tile := Tile(line[c])
			switch tile {
			case Passable, Impassable, Hazardous:
			case Start:
				m.start = Coord{Row: r, Col: c}
				starts++
			case Destination:
				m.dest = Coord{Row: r, Col: c}
				dests++
			default:
				return nil, fmt.Errorf("%w: %q at row %d col %d", ErrBadTile, line[c], r, c)
			}
			row[c] = tile
		}
		m.tiles = append(m.tiles, row)
	}
	if starts != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrMissingStart, starts)
	}
	if dests != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrMissingDestination, dests)
	}

	for _, p := range o.portals {
		if err := m.link(p); err != nil {
			return nil, err
		}
	}
	m.relax()
	return m, nil
}

func (m *Map) link(p Portal) error {
	for _, end := range []Coord{p.A, p.B} {
		tile, ok := m.Tile(end)
		switch {
		case !ok:
			return fmt.Errorf("%w: %v is outside the map", ErrBadPortal, end)
		case tile == Impassable:
			return fmt.Errorf("%w: %v is impassable", ErrBadPortal, end)
		case end == m.dest:
			return fmt.Errorf("%w: %v is the destination", ErrBadPortal, end)
		}
		if _, taken := m.portals[end]; taken {
			return fmt.Errorf("%w: %v already has a portal", ErrBadPortal, end)
		}
	}
	if p.A == p.B {
		return fmt.Errorf("%w: %v links to itself", ErrBadPortal, p.A)
	}
	m.portals[p.A] = p.B
	m.portals[p.B] = p.A
	return nil
}

// relax runs Bellman-Ford over the portal ends of the relaxed map, where the
// robot walks Manhattan distances and every step costs one.
func (m *Map) relax() {
	m.relaxed = make(map[Coord]float64, len(m.portals))
	for end := range m.portals {
		m.relaxed[end] = manhattan(end, m.dest)
	}
	for range len(m.portals) {
		changed := false
		for from := range m.portals {
			for end, partner := range m.portals {
				if d := enter(from, end) + m.relaxed[partner]; d < m.relaxed[from] {
					m.relaxed[from] = d
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

// enter is the fewest steps that end with stepping onto to.
func enter(from, to Coord) float64 {
	if from == to {
		return 2 // step off and back on
	}
	return manhattan(from, to)
}

func manhattan(a, b Coord) float64 {
	return float64(utils.Abs(a.Row-b.Row) + utils.Abs(a.Col-b.Col))
}

// Tile returns the tile at c. ok is false outside the map.
func (m *Map) Tile(c Coord) (Tile, bool) {
	if c.Row < 0 || c.Row >= len(m.tiles) || c.Col < 0 || c.Col >= len(m.tiles[c.Row]) {
		return 0, false
	}
	return m.tiles[c.Row][c.Col], true
}

func (m *Map) Start() Coord {
	return m.start
}

func (m *Map) Destination() Coord {
	return m.dest
}

func (m *Map) IsGoal(c Coord) bool {
	return c == m.dest
}

var moves = [...]struct {
	name   string
	dr, dc int
}{
	{"north", -1, 0},
	{"south", 1, 0},
	{"west", 0, -1},
	{"east", 0, 1},
}

// Neighbors yields one arc per direction the robot can move in. The arc ends
// where the robot comes to rest, on the far end of a portal if it stepped on
// one, and costs the hazard cost when that tile is hazardous.
func (m *Map) Neighbors(c Coord) iter.Seq[searcher.Arc[Coord]] {
	return func(yield func(searcher.Arc[Coord]) bool) {
		for _, mv := range moves {
			next := Coord{Row: c.Row + mv.dr, Col: c.Col + mv.dc}
			tile, ok := m.Tile(next)
			if !ok || tile == Impassable {
				continue
			}
			if partner, ok := m.portals[next]; ok {
				next = partner
				tile, _ = m.Tile(next)
			}
			cost := 1.0
			if tile == Hazardous {
				cost = m.hazardCost
			}
			if !yield(searcher.Arc[Coord]{From: c, To: next, Cost: cost, Action: mv.name}) {
				return
			}
		}
	}
}

// Heuristic is the exact distance to the destination on the map with walls
// and hazards removed, portals included. It is consistent.
func (m *Map) Heuristic(c Coord) float64 {
	if d, ok := m.relaxed[c]; ok {
		return d
	}
	best := manhattan(c, m.dest)
	for end, partner := range m.portals {
		best = min(best, enter(c, end)+m.relaxed[partner])
	}
	return best
}

// Render draws the map with the path's resting tiles marked 'o'.
func (m *Map) Render(path *searcher.Path[Coord]) string {
	on := map[Coord]bool{}
	if path != nil {
		for _, c := range path.States() {
			on[c] = true
		}
	}
	var sb strings.Builder
	for r, row := range m.tiles {
		for c, tile := range row {
			at := Coord{Row: r, Col: c}
			switch {
			case tile == Start || tile == Destination:
				sb.WriteByte(byte(tile))
			case on[at]:
				sb.WriteByte('o')
			default:
				sb.WriteByte(byte(tile))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
