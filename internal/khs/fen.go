package khs

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// FEN：用“|”分成几段，每段都是 14 行、“/”分隔、空格用数字压缩的网格。
//   1. 棋子：字母表示种类，한 大写，초 小写
//   2. 是否走过：m / -
//   3. 所属翼：L / R / C
//   4. 欠债（可选，只有有棋子欠债时才写）：'-' 无，否则 'a'+位图
// 2、3、4 段只给有子的格子写字符，和第 1 段的字母一一对应。

func encodeGrid(b *Board, sb *strings.Builder, cell func(Piece) byte) {
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := b.Squares[indexOf(r, c)]
			if pc.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(cell(pc))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
}

func movedChar(p Piece) byte {
	if p.Moved {
		return 'm'
	}
	return '-'
}

func flankChar(p Piece) byte {
	switch p.Flank {
	case FlankLeft:
		return 'L'
	case FlankRight:
		return 'R'
	default:
		return 'C'
	}
}

func debtChar(p Piece) byte {
	if p.Debt == 0 {
		return '-'
	}
	return byte('a' + int(p.Debt))
}

// Encode 当前棋盘的 FEN
func (b *Board) Encode() string {
	var sb strings.Builder
	encodeGrid(b, &sb, func(p Piece) byte { return byte(pieceToChar(p)) })
	sb.WriteByte('|')
	encodeGrid(b, &sb, movedChar)
	sb.WriteByte('|')
	encodeGrid(b, &sb, flankChar)

	for _, pc := range b.Squares {
		if !pc.Empty() && pc.Debt != 0 {
			sb.WriteByte('|')
			encodeGrid(b, &sb, debtChar)
			break
		}
	}
	return sb.String()
}

// walkGrid 按行展开一段网格，对每个非数字字符回调 (row, col, ch)。
// 多出来的行、超出一行的字符都跳过并记下错误；短行视为右侧补空。
func walkGrid(seg, name string, fn func(row, col int, ch rune) error) error {
	var result error
	rows := strings.Split(seg, "/")
	if len(rows) > Rows {
		result = multierror.Append(result,
			errors.Wrapf(ErrInvalidFEN, "%s: %d rows, extra ignored", name, len(rows)))
		rows = rows[:Rows]
	}
	for r, row := range rows {
		runes := []rune(row)
		c := 0
		for i := 0; i < len(runes); {
			if c >= Cols {
				result = multierror.Append(result,
					errors.Wrapf(ErrInvalidFEN, "%s: row %d overflows at %q", name, r, string(runes[i:])))
				break
			}
			ch := runes[i]
			if unicode.IsDigit(ch) {
				j := i
				for j < len(runes) && unicode.IsDigit(runes[j]) {
					j++
				}
				n, _ := strconv.Atoi(string(runes[i:j]))
				c += n
				i = j
				continue
			}
			if err := fn(r, c, ch); err != nil {
				result = multierror.Append(result, errors.Wrapf(err, "%s: row %d col %d", name, r, c))
			}
			c++
			i++
		}
	}
	return result
}

// DecodeFEN 尽力解析：坏掉的格子跳过，缺的段用默认值（未走过、翼按列推出）。
// 返回的棋盘总是可用的；err 汇总了所有被跳过的问题。
func DecodeFEN(fen string) (Board, error) {
	var b Board
	var result error

	parts := strings.Split(strings.TrimSpace(fen), "|")
	if len(parts) > 4 {
		result = multierror.Append(result,
			errors.Wrapf(ErrInvalidFEN, "%d segments, extra ignored", len(parts)))
	}

	err := walkGrid(parts[0], "pieces", func(r, c int, ch rune) error {
		kind, ok := letterToPieceKind[unicode.ToLower(ch)]
		if !ok {
			return errors.Wrapf(ErrInvalidFEN, "unknown piece %q", ch)
		}
		side := Cho
		if unicode.IsUpper(ch) {
			side = Han
		}
		b.Squares[indexOf(r, c)] = makePiece(side, kind, c)
		return nil
	})
	if err != nil {
		result = multierror.Append(result, err)
	}

	// 后面几段只改已有棋子的属性
	overlay := func(idx int, name string, set func(p *Piece, ch rune) bool) {
		if len(parts) <= idx || parts[idx] == "" {
			return
		}
		err := walkGrid(parts[idx], name, func(r, c int, ch rune) error {
			p := &b.Squares[indexOf(r, c)]
			if p.Empty() {
				return errors.Wrapf(ErrInvalidFEN, "%q on empty square", ch)
			}
			if !set(p, ch) {
				return errors.Wrapf(ErrInvalidFEN, "bad flag %q", ch)
			}
			return nil
		})
		if err != nil {
			result = multierror.Append(result, err)
		}
	}

	overlay(1, "moved", func(p *Piece, ch rune) bool {
		p.Moved = ch == 'm'
		return ch == 'm' || ch == '-'
	})
	overlay(2, "flank", func(p *Piece, ch rune) bool {
		switch ch {
		case 'L':
			p.Flank = FlankLeft
		case 'R':
			p.Flank = FlankRight
		case 'C':
			p.Flank = FlankCenter
		default:
			return false
		}
		return true
	})
	overlay(3, "debt", func(p *Piece, ch rune) bool {
		if ch == '-' {
			p.Debt = 0
			return true
		}
		mask := int(ch - 'a')
		if mask <= 0 || mask >= 1<<numFlankKeys {
			return false
		}
		p.Debt = FlankState(mask)
		return true
	})

	return b, result
}

// MustDecodeFEN 测试和工具用，解析出错直接 panic
func MustDecodeFEN(fen string) Board {
	b, err := DecodeFEN(fen)
	if err != nil {
		panic(fmt.Sprintf("khs: bad FEN %q: %v", fen, err))
	}
	return b
}
