package model

const (
	BoardSize     = 68
	HomeRowLength = 7
	PawnsPerColor = 4

	// ExitToEntrance is how far behind its entrance a color leaves the ring.
	ExitToEntrance = 5

	BopBonus  = 20
	HomeBonus = 10
)

var entrances = [NumColors]int{
	Red:    4,
	Blue:   21,
	Yellow: 38,
	Green:  55,
}

var homeRowStarts = [NumColors]int{
	Red:    100,
	Blue:   200,
	Yellow: 300,
	Green:  400,
}

var safetySpots = map[int]bool{
	4: true, 11: true, 16: true, 21: true, 28: true, 33: true,
	38: true, 45: true, 50: true, 55: true, 62: true, 67: true,
}

func (c Color) Entrance() int {
	c.mustBeValid()
	return entrances[c]
}

func (c Color) HomeRowStart() int {
	c.mustBeValid()
	return homeRowStarts[c]
}

// Exit is the last main ring cell before the color turns into its home row.
func (c Color) Exit() int {
	return (c.Entrance() - ExitToEntrance + BoardSize) % BoardSize
}

func (c Color) IsHomeRow(loc Location) bool {
	start := c.HomeRowStart()
	return loc.IsTrack() && loc.Index >= start && loc.Index < start+HomeRowLength
}

func IsSafety(loc Location) bool {
	return loc.OnMainRing() && safetySpots[loc.Index]
}

// Route positions are a color's own view of the board: 0 is its entrance,
// ring cells count up to BoardSize-1, the home row follows at BoardSize and
// Home comes right after the last home row cell. Only the conversions below
// know about absolute indexes.
const (
	routeNest    = -1
	routeExit    = BoardSize - ExitToEntrance
	routeHomeRow = BoardSize
	routeHome    = BoardSize + HomeRowLength
)

func (c Color) toRoute(loc Location) (int, bool) {
	switch {
	case loc.IsNest():
		return routeNest, true
	case loc.IsHome():
		return routeHome, true
	case loc.OnMainRing():
		return (loc.Index - c.Entrance() + BoardSize) % BoardSize, true
	case c.IsHomeRow(loc):
		return routeHomeRow + loc.Index - c.HomeRowStart(), true
	default:
		return 0, false
	}
}

func (c Color) fromRoute(pos int) Location {
	switch {
	case pos == routeNest:
		return Nest()
	case pos >= routeHome:
		return Home()
	case pos >= routeHomeRow:
		return Track(c.HomeRowStart() + pos - routeHomeRow)
	default:
		return Track((c.Entrance() + pos) % BoardSize)
	}
}

func nextRoute(pos int) (int, bool) {
	switch {
	case pos == routeNest:
		return 0, true
	case pos == routeHome:
		return 0, false
	case pos == routeExit:
		return routeHomeRow, true
	case pos < routeHomeRow:
		return (pos + 1) % BoardSize, true
	default:
		return pos + 1, true
	}
}

// Progress orders locations along the color's route. Ring cells the color
// never legitimately visits (between its exit and entrance) sort after the
// exit, matching where stepping from them would lead.
func (c Color) Progress(loc Location) (int, bool) {
	pos, ok := c.toRoute(loc)
	if !ok {
		return 0, false
	}
	return pos + 1, true
}

// Path walks one color's route a cell at a time. It is finite and cannot be
// restarted: once it reaches Home, Next reports false.
type Path struct {
	color   Color
	pos     int
	pending bool
	done    bool
}

// NewPath returns the full route, starting with the Nest itself.
func NewPath(color Color) *Path {
	color.mustBeValid()
	return &Path{color: color, pos: routeNest, pending: true}
}

// PathFrom yields the cells after start. A start that is not on the color's
// route yields nothing.
func PathFrom(color Color, start Location) *Path {
	color.mustBeValid()
	pos, ok := color.toRoute(start)
	return &Path{color: color, pos: pos, done: !ok}
}

func (p *Path) Next() (Location, bool) {
	if p.done {
		return Location{}, false
	}
	if p.pending {
		p.pending = false
		return p.color.fromRoute(p.pos), true
	}
	next, ok := nextRoute(p.pos)
	if !ok {
		p.done = true
		return Location{}, false
	}
	p.pos = next
	return p.color.fromRoute(next), true
}

// Take returns up to n further cells. Fewer come back when the route ends.
func (p *Path) Take(n int) []Location {
	locs := make([]Location, 0, min(max(n, 0), routeHome+1))
	for i := 0; i < n; i++ {
		loc, ok := p.Next()
		if !ok {
			break
		}
		locs = append(locs, loc)
	}
	return locs
}

// Destination steps distance cells from start along the color's route.
func Destination(color Color, start Location, distance int) (Location, error) {
	if distance <= 0 {
		return Location{}, ErrInvalidDistance
	}
	if _, ok := color.toRoute(start); !ok || start.IsNest() {
		return Location{}, ErrOffPath
	}
	// No route is longer than the number of cells on it.
	if distance > routeHome+1 {
		return Location{}, ErrOvershoot
	}
	steps := PathFrom(color, start).Take(distance)
	if len(steps) < distance {
		return Location{}, ErrOvershoot
	}
	return steps[len(steps)-1], nil
}
