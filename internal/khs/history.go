package khs

import "github.com/pkg/errors"

// MoveRecord 一步棋的记录，生成后不再改动
type MoveRecord struct {
	Side     Side
	Kind     PieceKind
	From, To Square
	// Notation 例如 "h3h4"
	Notation  string
	FENBefore string
	FENAfter  string
	// Captured 被吃的棋子种类，没吃子为 PieceNone
	Captured    PieceKind
	FlanksAfter FlankState
}

// GoToHistory 直接跳到第 index 步之后的局面（0 = 开局），不重放走法，也不改动 History。
// index 超出 [0, len(History)] 时返回 ErrHistoryIndex，状态不变。
func (g *Game) GoToHistory(index int) error {
	if index < 0 || index > len(g.History) {
		return errors.Wrapf(ErrHistoryIndex, "index %d, history has %d moves", index, len(g.History))
	}

	fen, flanks := g.initialFEN, g.initialFlanks
	if index > 0 {
		rec := g.History[index-1]
		fen, flanks = rec.FENAfter, rec.FlanksAfter
	}
	// 快照都是自己编码出来的，不会出错
	b, _ := DecodeFEN(fen)
	g.load(b, flanks, index)

	// 吃王那一步之后不换手
	if g.Over && index == len(g.History) && index > 0 {
		g.Turn = g.History[index-1].Side
		g.InCheck = NoSide
	}
	return nil
}

func (g *Game) snapToTip() {
	_ = g.GoToHistory(len(g.History))
}

// LastMove 最近一步，没有返回 false
func (g *Game) LastMove() (MoveRecord, bool) {
	if len(g.History) == 0 {
		return MoveRecord{}, false
	}
	return g.History[len(g.History)-1], true
}
