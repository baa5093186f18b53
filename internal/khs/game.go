package khs

import "github.com/pkg/errors"

// Game 一局棋的全部状态。不是并发安全的，同一局的调用由上层串行化。
type Game struct {
	Board Board
	Turn  Side

	// 当前选中的棋子和它的合法落点
	Selected   Square
	Candidates []Square

	Over   bool
	Winner Side

	// Flanks 已失效的翼
	Flanks FlankState

	History []MoveRecord
	// InCheck 当前被将军的一方，没有则为 NoSide
	InCheck Side
	// ViewIndex 正在查看的历史位置，len(History) 表示最新局面
	ViewIndex int

	initialFEN    string
	initialFlanks FlankState
}

func NewGame() *Game {
	g, _ := NewGameFromFEN(InitialFEN, 0)
	return g
}

// NewGameFromFEN 从任意局面开局，초 先走。FEN 有问题时仍返回可用的棋局和汇总的错误。
func NewGameFromFEN(fen string, flanks FlankState) (*Game, error) {
	b, err := DecodeFEN(fen)
	g := &Game{
		Winner:        NoSide,
		initialFEN:    b.Encode(),
		initialFlanks: flanks,
	}
	g.load(b, flanks, 0)
	return g, err
}

func (g *Game) load(b Board, flanks FlankState, index int) {
	g.Board = b
	g.Flanks = flanks
	g.ViewIndex = index
	if index%2 == 0 {
		g.Turn = Cho
	} else {
		g.Turn = Han
	}
	g.clearSelection()
	g.updateCheck()
}

func (g *Game) clearSelection() {
	g.Selected = NoSquare
	g.Candidates = nil
}

func (g *Game) updateCheck() {
	if g.Board.IsInCheck(g.Turn) {
		g.InCheck = g.Turn
	} else {
		g.InCheck = NoSide
	}
}

// Reset 丢掉整局记录，回到开局
func (g *Game) Reset() {
	b, _ := DecodeFEN(g.initialFEN)
	g.History = nil
	g.Over = false
	g.Winner = NoSide
	g.load(b, g.initialFlanks, 0)
}

// Viewing 是否正在看历史局面（不是最新局面）
func (g *Game) Viewing() bool { return g.ViewIndex != len(g.History) }

// Locked 该格上的棋子是否因所在翼失效而不能动
func (g *Game) Locked(sq Square) bool {
	pc := g.Board.At(sq)
	return !pc.Empty() && pieceLocked(pc, g.Flanks)
}

// LegalMoves 该格棋子的合法走法；失效翼上的棋子没有走法
func (g *Game) LegalMoves(sq Square) []Square {
	if g.Locked(sq) {
		return nil
	}
	return g.Board.LegalMoves(sq)
}

// AllLegalMoves 轮到的一方全部合法走法
func (g *Game) AllLegalMoves() []Move {
	if g.Over {
		return nil
	}
	return g.Board.LegalMovesForSide(g.Turn, g.Flanks)
}

func containsSquare(list []Square, sq Square) bool {
	for _, s := range list {
		if s == sq {
			return true
		}
	}
	return false
}

// SelectOrMove 处理一次点击，真正走了一步才返回 true。
//   - 有选中且点中候选落点：走子
//   - 点中已选中的棋子：取消选择
//   - 点中己方可动的棋子：选中并算出合法落点
//   - 其余（空格、对方子、失效翼的子）：清掉选择
//
// 在看历史时，这次点击只用来回到最新局面。
func (g *Game) SelectOrMove(sq Square) bool {
	if g.Over {
		return false
	}
	if g.Viewing() {
		g.snapToTip()
		return false
	}

	if g.Selected != NoSquare && containsSquare(g.Candidates, sq) {
		_, ok := g.ApplyMove(g.Selected, sq)
		return ok
	}
	if g.Selected != NoSquare && g.Selected == sq {
		g.clearSelection()
		return false
	}

	pc := g.Board.At(sq)
	if pc.Empty() || pc.Side != g.Turn || pieceLocked(pc, g.Flanks) {
		g.clearSelection()
		return false
	}
	g.Selected = sq
	g.Candidates = g.Board.LegalMoves(sq)
	return false
}

// ApplyMove 执行 from -> to，不检查走法规则（由 SelectOrMove/Play 负责）。
// from 上没有轮到一方的子、to 上是己方子、棋局已结束或正在看历史时返回 false。
func (g *Game) ApplyMove(from, to Square) (MoveRecord, bool) {
	if g.Over || g.Viewing() || !from.Valid() || !to.Valid() || from == to {
		return MoveRecord{}, false
	}
	mover := g.Board.Squares[from]
	if mover.Empty() || mover.Side != g.Turn {
		return MoveRecord{}, false
	}
	captured := g.Board.Squares[to]
	if !captured.Empty() && captured.Side == mover.Side {
		return MoveRecord{}, false
	}

	rec := MoveRecord{
		Side:      mover.Side,
		Kind:      mover.Kind,
		From:      from,
		To:        to,
		Notation:  from.String() + to.String(),
		FENBefore: g.Board.Encode(),
		Captured:  captured.Kind,
	}

	if captured.Kind == PieceKing {
		g.Over = true
		g.Winner = mover.Side
	}
	if captured.Kind == PieceGeneral {
		key := FlankKeyOf(captured.Side, captured.Flank)
		g.Flanks = g.Flanks.With(key)
		mover.Debt = mover.Debt.With(key)
	}
	if captured.Debt != 0 {
		// 吃掉了欠债的棋子：它当初让哪几翼失效，就恢复哪几翼
		g.Flanks = g.Flanks.Minus(captured.Debt)
	}

	mover.Moved = true
	g.Board.Squares[to] = mover
	g.Board.Squares[from] = Piece{}

	rec.FENAfter = g.Board.Encode()
	rec.FlanksAfter = g.Flanks
	g.History = append(g.History, rec)
	g.ViewIndex = len(g.History)

	if !g.Over {
		g.Turn = opposite(g.Turn)
		g.updateCheck()
	} else {
		g.InCheck = NoSide
	}
	g.clearSelection()
	return rec, true
}

// Play 校验后走子，给网络对局用。正在看历史时先回到最新局面。
func (g *Game) Play(from, to Square) (MoveRecord, error) {
	if g.Viewing() {
		g.snapToTip()
	}
	if g.Over {
		return MoveRecord{}, ErrGameOver
	}
	pc := g.Board.At(from)
	if pc.Empty() {
		return MoveRecord{}, errors.Wrapf(ErrNoPiece, "%s", from)
	}
	if pc.Side != g.Turn {
		return MoveRecord{}, errors.Wrapf(ErrNotYourTurn, "%s is %s, turn is %s", from, pc.Side, g.Turn)
	}
	if pieceLocked(pc, g.Flanks) {
		return MoveRecord{}, errors.Wrapf(ErrFlankDeactivated, "%s (%s)", from, FlankKeyOf(pc.Side, pc.Flank))
	}
	if !containsSquare(g.Board.LegalMoves(from), to) {
		return MoveRecord{}, errors.Wrapf(ErrIllegalMove, "%s%s", from, to)
	}
	rec, ok := g.ApplyMove(from, to)
	if !ok {
		return MoveRecord{}, errors.Wrapf(ErrIllegalMove, "%s%s", from, to)
	}
	return rec, nil
}
