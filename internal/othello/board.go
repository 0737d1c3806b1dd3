package othello

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BoardStringLength is the length of the text form of a Board.
const BoardStringLength = 34

// Board represents an Othello board with the side to move.
// Board is a value type: copying it copies all squares.
type Board struct {
	cells [Size][Size]Cell
	turn  Cell
}

// NewBoardStart creates a new board with the starting position.
func NewBoardStart() Board {
	var b Board
	b.cells[3][3] = White
	b.cells[4][4] = White
	b.cells[3][4] = Black
	b.cells[4][3] = Black
	b.turn = Black
	return b
}

// NewBoardEmpty creates a new board without discs.
func NewBoardEmpty(turn Cell) (Board, error) {
	if !turn.IsPlayer() {
		return Board{}, fmt.Errorf("invalid turn: %s", turn)
	}
	return Board{turn: turn}, nil
}

// NewBoardFromString creates a new board from the output of Board.String.
func NewBoardFromString(s string) (Board, error) {
	if len(s) != BoardStringLength {
		return Board{}, fmt.Errorf("board string must be %d characters long, got %d", BoardStringLength, len(s))
	}

	player, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid player discs: %w", err)
	}

	opponent, err := strconv.ParseUint(s[16:32], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid opponent discs: %w", err)
	}

	if player&opponent != 0 {
		return Board{}, errors.New("invalid board: player and opponent discs cannot overlap")
	}

	var turn Cell
	switch s[32:34] {
	case "-w":
		turn = White
	case "-b":
		turn = Black
	default:
		return Board{}, fmt.Errorf("invalid turn: %s", s[32:34])
	}

	b := Board{turn: turn}
	for index := 0; index < Size * Size; index++ {
		mask := uint64(1) << index
		switch {
		case player&mask != 0:
			b.cells[index/Size][index%Size] = turn
		case opponent&mask != 0:
			b.cells[index/Size][index%Size] = turn.Opponent()
		}
	}

	return b, nil
}

// NewBoardFromGrid creates a board from 8 rows of 8 characters,
// where 'B' is black, 'W' is white and '.' is empty.
func NewBoardFromGrid(rows []string, turn Cell) (Board, error) {
	b, err := NewBoardEmpty(turn)
	if err != nil {
		return Board{}, err
	}

	if len(rows) != Size {
		return Board{}, fmt.Errorf("grid must have %d rows, got %d", Size, len(rows))
	}

	for row, line := range rows {
		if len(line) != Size {
			return Board{}, fmt.Errorf("grid row %d must have %d columns, got %d", row, Size, len(line))
		}

		for col := 0; col < Size; col++ {
			switch line[col] {
			case 'B', 'b':
				b.cells[row][col] = Black
			case 'W', 'w':
				b.cells[row][col] = White
			case '.':
			default:
				return Board{}, fmt.Errorf("invalid grid character %q at row %d, column %d", line[col], row, col)
			}
		}
	}

	return b, nil
}

// At returns the content of the square of move m. Off-board squares are Empty.
func (b Board) At(m Move) Cell {
	if !m.Valid() {
		return Empty
	}
	return b.cells[m.Row][m.Col]
}

// Turn returns the side to move.
func (b Board) Turn() Cell {
	return b.turn
}

// withTurn returns a copy of the board with a different side to move.
func (b Board) withTurn(turn Cell) Board {
	b.turn = turn
	return b
}

// discs returns the bitboards of black and white discs.
func (b Board) discs() (black, white uint64) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			mask := uint64(1) << Move{Row: row, Col: col}.index()
			switch b.cells[row][col] {
			case Black:
				black |= mask
			case White:
				white |= mask
			}
		}
	}
	return black, white
}

// CountDiscs returns the number of discs on the board.
func (b Board) CountDiscs() int {
	white, black := b.count()
	return white + black
}

func (b Board) count() (white, black int) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch b.cells[row][col] {
			case White:
				white++
			case Black:
				black++
			}
		}
	}
	return white, black
}

// Grid returns the rows of the board using 'B', 'W' and '.'.
func (b Board) Grid() []string {
	rows := make([]string, Size)
	for row := 0; row < Size; row++ {
		var sb strings.Builder
		for col := 0; col < Size; col++ {
			switch b.cells[row][col] {
			case Black:
				sb.WriteByte('B')
			case White:
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
		}
		rows[row] = sb.String()
	}
	return rows
}

// ASCIIArtLines returns the ascii art lines for the board, marking the highlighted moves.
func (b Board) ASCIIArtLines(highlight []Move) []string {
	marked := make(map[Move]bool, len(highlight))
	for _, m := range highlight {
		marked[m] = true
	}

	lines := make([]string, Size+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := 0; row < Size; row++ {
		line := fmt.Sprintf("%d ", row+1)

		for col := 0; col < Size; col++ {
			switch b.cells[row][col] {
			case White:
				line += "○ "
			case Black:
				line += "● "
			default:
				if marked[Move{Row: row, Col: col}] {
					line += "· "
				} else {
					line += "  "
				}
			}
		}

		lines[row+1] = line + "|"
	}

	lines[Size+1] = "+-----------------+"

	return lines
}

// String returns the text form of the board: the hex bitboard of the side to move,
// the hex bitboard of the other side and a "-b" or "-w" turn suffix.
func (b Board) String() string {
	black, white := b.discs()

	if b.turn == White {
		return fmt.Sprintf("%016x%016x-w", white, black)
	}
	return fmt.Sprintf("%016x%016x-b", black, white)
}

// MarshalJSON implements json.Marshaler for Board.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON implements json.Unmarshaler for Board.
func (b *Board) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid board string: %w", err)
	}

	parsed, err := NewBoardFromString(s)
	if err != nil {
		return fmt.Errorf("invalid board string: %w", err)
	}

	*b = parsed
	return nil
}
