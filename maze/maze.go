// Package maze is a grid maze search problem. A maze is given as text where a
// space is an open cell and every other character is a wall.
package maze

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"explore/searcher"
	"explore/utils"
)

var (
	ErrEmptyMaze   = errors.New("maze: no cells")
	ErrNotPassable = errors.New("maze: cell is a wall")
	ErrBadCoord    = errors.New("maze: malformed coordinate")
)

const DefaultText = `
**********
*        *
* ********
* ****** *
* * *    *
* * * ** *
* * * ** *
* * **** *
*        *
**********`

var (
	DefaultStart = Coord{Row: 3, Col: 8}
	DefaultGoal  = Coord{Row: 1, Col: 8}
)

type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// ParseCoord reads "row,col".
func ParseCoord(text string) (Coord, error) {
	row, col, ok := strings.Cut(text, ",")
	if !ok {
		return Coord{}, fmt.Errorf("%w: %q, want row,col", ErrBadCoord, text)
	}
	r, err := strconv.Atoi(strings.TrimSpace(row))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q: %w", ErrBadCoord, text, err)
	}
	c, err := strconv.Atoi(strings.TrimSpace(col))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q: %w", ErrBadCoord, text, err)
	}
	return Coord{Row: r, Col: c}, nil
}

// Maze implements searcher.Problem and searcher.Heuristic over grid cells.
// Every move costs one.
type Maze struct {
	rows  [][]bool // true when open; rows may differ in length
	start Coord
	goal  Coord
}

var (
	_ searcher.Problem[Coord]   = (*Maze)(nil)
	_ searcher.Heuristic[Coord] = (*Maze)(nil)
)

// Parse builds a maze from text. Leading and trailing blank lines are ignored.
func Parse(text string, start, goal Coord) (*Maze, error) {
	text = strings.Trim(text, "\r\n")
	if text == "" {
		return nil, ErrEmptyMaze
	}
	var rows [][]bool
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		row := make([]bool, len(line))
		for c, ch := range []byte(line) {
			row[c] = ch == ' '
		}
		rows = append(rows, row)
	}
	return build(rows, start, goal)
}

// NewGrid builds an open rows x cols maze with the given cells blocked.
func NewGrid(rows, cols int, start, goal Coord, blocked ...Coord) (*Maze, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyMaze
	}
	grid := make([][]bool, rows)
	for r := range grid {
		grid[r] = make([]bool, cols)
		for c := range grid[r] {
			grid[r][c] = true
		}
	}
	for _, b := range blocked {
		if b.Row >= 0 && b.Row < rows && b.Col >= 0 && b.Col < cols {
			grid[b.Row][b.Col] = false
		}
	}
	return build(grid, start, goal)
}

func build(rows [][]bool, start, goal Coord) (*Maze, error) {
	m := &Maze{rows: rows, start: start, goal: goal}
	if !m.Open(start) {
		return nil, fmt.Errorf("%w: start %v", ErrNotPassable, start)
	}
	if !m.Open(goal) {
		return nil, fmt.Errorf("%w: goal %v", ErrNotPassable, goal)
	}
	return m, nil
}

// Default returns the built-in maze. Its shortest path is 26 moves long.
func Default() *Maze {
	m, err := Parse(DefaultText, DefaultStart, DefaultGoal)
	if err != nil {
		panic(err)
	}
	return m
}

// Open reports whether c lies inside the maze and is not a wall.
func (m *Maze) Open(c Coord) bool {
	return c.Row >= 0 && c.Row < len(m.rows) && c.Col >= 0 && c.Col < len(m.rows[c.Row]) && m.rows[c.Row][c.Col]
}

func (m *Maze) Start() Coord {
	return m.start
}

func (m *Maze) Goal() Coord {
	return m.goal
}

func (m *Maze) IsGoal(c Coord) bool {
	return c == m.goal
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

// Neighbors yields the open cells around c: north, south, west then east.
func (m *Maze) Neighbors(c Coord) iter.Seq[searcher.Arc[Coord]] {
	return func(yield func(searcher.Arc[Coord]) bool) {
		for _, mv := range moves {
			next := Coord{Row: c.Row + mv.dr, Col: c.Col + mv.dc}
			if !m.Open(next) {
				continue
			}
			if !yield(searcher.Arc[Coord]{From: c, To: next, Cost: 1, Action: mv.name}) {
				return
			}
		}
	}
}

// Heuristic is the Manhattan distance to the goal.
func (m *Maze) Heuristic(c Coord) float64 {
	return float64(utils.Abs(c.Row-m.goal.Row) + utils.Abs(c.Col-m.goal.Col))
}

// Render draws the maze with walls as '*', the path as 'o', and the start
// and goal as 'S' and 'G'.
func (m *Maze) Render(path *searcher.Path[Coord]) string {
	on := map[Coord]bool{}
	if path != nil {
		for _, c := range path.States() {
			on[c] = true
		}
	}
	var sb strings.Builder
	for r, row := range m.rows {
		for c, open := range row {
			at := Coord{Row: r, Col: c}
			switch {
			case at == m.start:
				sb.WriteByte('S')
			case at == m.goal:
				sb.WriteByte('G')
			case !open:
				sb.WriteByte('*')
			case on[at]:
				sb.WriteByte('o')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
