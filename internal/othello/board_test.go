package othello

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoardStart(t *testing.T) {
	b := NewBoardStart()

	require.Equal(t, Black, b.Turn())
	require.Equal(t, White, b.At(Move{Row: 3, Col: 3}))
	require.Equal(t, White, b.At(Move{Row: 4, Col: 4}))
	require.Equal(t, Black, b.At(Move{Row: 3, Col: 4}))
	require.Equal(t, Black, b.At(Move{Row: 4, Col: 3}))

	white, black := b.count()
	require.Equal(t, 2, white)
	require.Equal(t, 2, black)
	require.Equal(t, 4, b.CountDiscs())
}

func TestBoard_String(t *testing.T) {
	b := NewBoardStart()
	require.Equal(t, "00000008100000000000001008000000-b", b.String())

	white := b.withTurn(White)
	require.Equal(t, "00000010080000000000000810000000-w", white.String())
}

func TestNewBoardFromString(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantErrMsg string
	}{
		{
			name:  "start",
			input: NewBoardStart().String(),
		},
		{
			name:  "white to move",
			input: "00000010080000000000000810000000-w",
		},
		{
			name:       "invalid length",
			input:      "0000000810000000-b",
			wantErrMsg: "board string must be 34 characters long, got 18",
		},
		{
			name:       "invalid hex",
			input:      "000000081000000G0000001008000000-b",
			wantErrMsg: "invalid player discs",
		},
		{
			name:       "overlap",
			input:      "00000000000000010000000000000001-b",
			wantErrMsg: "cannot overlap",
		},
		{
			name:       "invalid turn",
			input:      "00000008100000000000001008000000-x",
			wantErrMsg: "invalid turn: -x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBoardFromString(tt.input)
			if tt.wantErrMsg != "" {
				require.ErrorContains(t, err, tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.input, b.String())
		})
	}
}

func TestNewBoardFromGrid(t *testing.T) {
	b, err := NewBoardFromGrid([]string{
		"........",
		"........",
		"........",
		"...WB...",
		"...BW...",
		"........",
		"........",
		"........",
	}, Black)
	require.NoError(t, err)
	require.Equal(t, NewBoardStart(), b)
	require.Equal(t, "...WB...", b.Grid()[3])

	_, err = NewBoardFromGrid([]string{"........"}, Black)
	require.ErrorContains(t, err, "grid must have 8 rows")

	_, err = NewBoardFromGrid(make([]string, 8), Black)
	require.ErrorContains(t, err, "grid row 0 must have 8 columns")

	_, err = NewBoardFromGrid([]string{
		"X.......", "........", "........", "........",
		"........", "........", "........", "........",
	}, Black)
	require.ErrorContains(t, err, "invalid grid character")

	_, err = NewBoardFromGrid(NewBoardStart().Grid(), Empty)
	require.ErrorContains(t, err, "invalid turn")
}

func TestBoard_JSON(t *testing.T) {
	type wrapper struct {
		Board Board `json:"board"`
	}

	in := wrapper{Board: NewBoardStart()}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"board":"00000008100000000000001008000000-b"}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)

	require.Error(t, json.Unmarshal([]byte(`{"board":"nope"}`), &out))
	require.Error(t, json.Unmarshal([]byte(`{"board":12}`), &out))
}

func TestBoard_At(t *testing.T) {
	b := NewBoardStart()
	require.Equal(t, Empty, b.At(Move{Row: 0, Col: 0}))
	require.Equal(t, Empty, b.At(Move{Row: -1, Col: 3}))
	require.Equal(t, Empty, b.At(Move{Row: 3, Col: 8}))
}

func TestBoard_ASCIIArtLines(t *testing.T) {
	b := NewBoardStart()
	lines := b.ASCIIArtLines([]Move{{Row: 2, Col: 3}})

	require.Len(t, lines, 10)
	require.Equal(t, "+-a-b-c-d-e-f-g-h-+", lines[0])
	require.Equal(t, "3       ·         |", lines[3])
	require.Equal(t, "4       ○ ●       |", lines[4])
	require.Equal(t, "+-----------------+", lines[9])
}

func TestCell(t *testing.T) {
	require.Equal(t, White, Black.Opponent())
	require.Equal(t, Black, White.Opponent())
	require.Equal(t, Empty, Empty.Opponent())
	require.False(t, Empty.IsPlayer())

	for _, c := range []Cell{Empty, Black, White} {
		parsed, err := ParseCell(c.String())
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	}

	_, err := ParseCell("red")
	require.Error(t, err)

	var c Cell
	require.NoError(t, json.Unmarshal([]byte(`"WHITE"`), &c))
	require.Equal(t, White, c)
	require.Error(t, json.Unmarshal([]byte(`1`), &c))
}

func TestMove(t *testing.T) {
	tests := []struct {
		field string
		move  Move
	}{
		{"a1", Move{Row: 0, Col: 0}},
		{"h8", Move{Row: 7, Col: 7}},
		{"d3", Move{Row: 2, Col: 3}},
		{"c4", Move{Row: 3, Col: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			m, err := ParseMove(tt.field)
			require.NoError(t, err)
			require.Equal(t, tt.move, m)
			require.Equal(t, tt.field, m.String())
		})
	}

	m, err := ParseMove("D3")
	require.NoError(t, err)
	require.Equal(t, Move{Row: 2, Col: 3}, m)

	for _, field := range []string{"", "d", "d33", "i1", "a9", "--"} {
		_, err = ParseMove(field)
		require.Error(t, err, field)
	}

	require.False(t, Move{Row: 8, Col: 0}.Valid())
	require.Equal(t, "(8,0)", Move{Row: 8, Col: 0}.String())
}
