package othello

import (
	"fmt"
	"strings"
)

const (
	// Size is the number of rows and columns of the board.
	Size = 8

	// PassField is the field notation of a pass in transcripts.
	PassField = "--"
)

// Move is a coordinate on the board. Rows and columns are 0-based.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid checks that the move lies on the board.
func (m Move) Valid() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

// index returns the bit index of the move, which is row*8+col.
func (m Move) index() int {
	return m.Row*Size + m.Col
}

// String returns the field notation of a move, e.g. "d3" for row 2, column 3.
func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// ParseMove converts field notation (e.g. "a1", "H8") to a Move.
func ParseMove(field string) (Move, error) {
	if len(field) != 2 {
		return Move{}, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Move{}, fmt.Errorf("invalid field: %q", field)
	}

	return Move{
		Row: int(field[1] - '1'),
		Col: int(field[0] - 'a'),
	}, nil
}
