package khs

import (
	"strconv"

	"github.com/pkg/errors"
)

const (
	Rows       = 14
	Cols       = 15
	NumSquares = Rows * Cols
)

// Square 扁平下标 row*Cols+col；row 0 在上方（한 的底线）
type Square int

const NoSquare Square = -1

func indexOf(row, col int) int { return row*Cols + col }

func SquareAt(row, col int) Square {
	if !onBoard(row, col) {
		return NoSquare
	}
	return Square(indexOf(row, col))
}

func (s Square) Row() int    { return int(s) / Cols }
func (s Square) Col() int    { return int(s) % Cols }
func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

// String 记谱坐标：列 a..o，行号 = Rows - row（row 13 → "1"）
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string(rune('a'+s.Col())) + strconv.Itoa(Rows-s.Row())
}

func ParseSquare(s string) (Square, error) {
	if len(s) < 2 || len(s) > 3 {
		return NoSquare, errors.Wrapf(ErrBadSquare, "%q", s)
	}
	col := int(s[0] - 'a')
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return NoSquare, errors.Wrapf(ErrBadSquare, "%q", s)
	}
	sq := SquareAt(Rows-n, col)
	if sq == NoSquare {
		return NoSquare, errors.Wrapf(ErrBadSquare, "%q", s)
	}
	return sq, nil
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func opposite(side Side) Side {
	if side == Cho {
		return Han
	}
	if side == Han {
		return Cho
	}
	return NoSide
}

// Opponent 对手一方
func (s Side) Opponent() Side { return opposite(s) }

// 前进方向：초 向上(-1)，한 向下(+1)
func forwardDir(side Side) int {
	if side == Cho {
		return -1
	}
	if side == Han {
		return +1
	}
	return 0
}

var (
	rookDirs   = [][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
	kingDirs   = [][2]int{{-1, -1}, {-1, 0}, {-1, +1}, {0, -1}, {0, +1}, {+1, -1}, {+1, 0}, {+1, +1}}
)

var letterToPieceKind = map[rune]PieceKind{
	'k': PieceKing,
	'q': PieceGeneral,
	'r': PieceChariot,
	'c': PieceCannon,
	'n': PieceHorse,
	'e': PieceElephant,
	'a': PieceGuard,
	'p': PiecePawn,
	'g': PieceCavalry,
	'm': PieceAmbush,
	'u': PieceRover,
	'l': PieceLancer,
	'f': PieceVanguard,
	'b': PieceRearguard,
}

var pieceKindToLetter [numPieceKinds]rune

func init() {
	for r, k := range letterToPieceKind {
		pieceKindToLetter[k] = r
	}
}

// pieceToChar 한 大写，초 小写
func pieceToChar(p Piece) rune {
	if p.Empty() {
		return '.'
	}
	base := pieceKindToLetter[p.Kind]
	if base == 0 {
		return '.'
	}
	if p.Side == Han {
		return base - 'a' + 'A'
	}
	return base
}

// 开局局面（只有第一段；move/flank 段按默认推出）
const initialLayout = "3M3B3M3/RAE1REA1AER1EAR/1Q1L3K3L1Q1/N1C2NC1CN2C1N/3U3F3U3/PPP1GGG1PPP1GGG/15/15/" +
	"ggg1ppp1ggg1ppp/3u3f3u3/n1c2nc1cn2c1n/1q1l3k3l1q1/rae1rea1aer1ear/3m3b3m3"

// InitialFEN 开局的规范 FEN（三段）
var InitialFEN string

func init() {
	b := NewInitialBoard()
	InitialFEN = b.Encode()
}

func NewInitialBoard() Board {
	b, err := DecodeFEN(initialLayout)
	if err != nil {
		panic("initialLayout: " + err.Error())
	}
	return b
}
