package othello

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cell is the content of a single square, or a side in the game.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

// Opponent returns the other side. Empty has no opponent and is returned as is.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// IsPlayer reports whether c is Black or White.
func (c Cell) IsPlayer() bool {
	return c == Black || c == White
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// ParseCell parses the output of Cell.String.
func ParseCell(s string) (Cell, error) {
	switch strings.ToLower(s) {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	case "empty":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("invalid cell: %q", s)
	}
}

// MarshalJSON implements json.Marshaler for Cell.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler for Cell.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid cell: %w", err)
	}

	parsed, err := ParseCell(s)
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}
