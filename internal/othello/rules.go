package othello

import (
	"fmt"
	"strings"
)

type direction struct {
	dRow, dCol int
}

// Rules decides which moves are legal and which discs they flip.
type Rules struct {
	name       string
	directions []direction
}

var (
	// OrthogonalRules only brackets discs up, down, left and right.
	OrthogonalRules = Rules{
		name: "orthogonal",
		directions: []direction{
			{-1, 0}, {1, 0}, {0, -1}, {0, 1},
		},
	}

	// StandardRules brackets discs in all 8 directions, like tournament Othello.
	StandardRules = Rules{
		name: "standard",
		directions: []direction{
			{-1, 0}, {1, 0}, {0, -1}, {0, 1},
			{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
		},
	}
)

// ParseRules returns the rules with the given name.
func ParseRules(name string) (Rules, error) {
	switch strings.ToLower(name) {
	case OrthogonalRules.name:
		return OrthogonalRules, nil
	case StandardRules.name:
		return StandardRules, nil
	default:
		return Rules{}, fmt.Errorf("unknown rules: %q", name)
	}
}

func (r Rules) String() string {
	return r.name
}

// IsLegal checks whether the side to move can play m.
func (r Rules) IsLegal(b Board, m Move) bool {
	if !m.Valid() || !b.turn.IsPlayer() || b.At(m) != Empty {
		return false
	}

	for _, dir := range r.directions {
		if r.bracketLength(b, m, dir) > 0 {
			return true
		}
	}

	return false
}

// FlipSet returns the opponent discs that m would flip, in direction order.
// It returns nil for illegal moves.
func (r Rules) FlipSet(b Board, m Move) []Move {
	if !m.Valid() || !b.turn.IsPlayer() || b.At(m) != Empty {
		return nil
	}

	var flips []Move
	for _, dir := range r.directions {
		n := r.bracketLength(b, m, dir)
		for dist := 1; dist <= n; dist++ {
			flips = append(flips, Move{Row: m.Row + dist*dir.dRow, Col: m.Col + dist*dir.dCol})
		}
	}

	return flips
}

// bracketLength returns the number of opponent discs between m and the nearest own disc in dir,
// or 0 if the run hits an empty square or the edge first.
func (r Rules) bracketLength(b Board, m Move, dir direction) int {
	player := b.turn
	opponent := player.Opponent()

	for s := 1; ; s++ {
		cur := Move{Row: m.Row + s*dir.dRow, Col: m.Col + s*dir.dCol}
		if !cur.Valid() {
			return 0
		}

		switch b.cells[cur.Row][cur.Col] {
		case opponent:
			continue
		case player:
			return s - 1
		default:
			return 0
		}
	}
}
