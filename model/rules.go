package model

// IsValidMove reports whether a single mini-move is legal on board b with
// dice d. It depends on nothing but its arguments.
func IsValidMove(b Board, d Dice, m Move) bool {
	if !m.Pawn.Valid() {
		return false
	}
	color := m.Pawn.Color
	current := b.PawnLocation(m.Pawn)

	switch m.Kind {
	case EnterPiece:
		return d.CanEnter().Kind != NoEntry &&
			current.IsNest() &&
			!b.IsBlockade(Track(color.Entrance()))
	case MoveMain, MoveHome:
	default:
		return false
	}

	start := Track(m.Start)
	if current != start || m.Distance <= 0 || !d.Contains(m.Distance) {
		return false
	}
	if m.Kind == MoveMain && !start.OnMainRing() {
		return false
	}
	if m.Kind == MoveHome && !color.IsHomeRow(start) {
		return false
	}

	// Every stepped cell, the destination included, must be free of
	// blockades. Running out of route means overshooting Home.
	steps := PathFrom(color, start).Take(m.Distance)
	if len(steps) < m.Distance {
		return false
	}
	for _, loc := range steps {
		if b.IsBlockade(loc) {
			return false
		}
	}

	dest := steps[len(steps)-1]
	if m.Kind == MoveMain && fullSafetySquare(b, color, dest) {
		return false
	}
	return true
}

// fullSafetySquare reports an opponent already sheltering on a safety square.
// The mover's own entrance is exempt: landing there bops.
func fullSafetySquare(b Board, c Color, dest Location) bool {
	if !IsSafety(dest) || dest == Track(c.Entrance()) {
		return false
	}
	return len(b.occupants(c, dest)) > 0
}

// HasValidMoves reports whether any pawn of color c can use any remaining
// distance. Pawns in the nest count through EnterPiece.
func HasValidMoves(b Board, d Dice, c Color) bool {
	if d.AllUsed() {
		return false
	}
	for id, loc := range b.Pawns(c) {
		for _, distance := range d.Rolls {
			m, ok := MoveFrom(Pawn{Color: c, ID: id}, loc, distance)
			if ok && IsValidMove(b, d, m) {
				return true
			}
		}
	}
	return false
}

// IsValidTurn checks what only a whole turn shows: the two pawns of a
// blockade standing at the start of the turn may not both move and end up
// together again. Home is not a cell, so a pair that both reach it is fine.
func IsValidTurn(start, end Board, c Color) bool {
	pawns := start.Pawns(c)
	for _, blockade := range start.blockadesOf(c) {
		var ids []int
		for id, loc := range pawns {
			if loc == blockade {
				ids = append(ids, id)
			}
		}
		first := end.Positions[c][ids[0]]
		second := end.Positions[c][ids[1]]
		if first != blockade && second != blockade && first == second && !first.IsHome() {
			return false
		}
	}
	return true
}
