package khs

import (
	"testing"

	"github.com/pkg/errors"
)

func gameFromBoard(t *testing.T, b Board) *Game {
	t.Helper()
	g, err := NewGameFromFEN(b.Encode(), 0)
	if err != nil {
		t.Fatalf("NewGameFromFEN: %v", err)
	}
	return g
}

func TestSelectOrMove(t *testing.T) {
	g := NewGame()
	pawn := SquareAt(8, 4)

	if g.SelectOrMove(SquareAt(5, 0)) {
		t.Fatalf("selecting an enemy piece must not move")
	}
	if g.Selected != NoSquare {
		t.Fatalf("enemy piece must not be selected")
	}

	if g.SelectOrMove(pawn) {
		t.Fatalf("selection must not move")
	}
	want := sqs([2]int{7, 4}, [2]int{8, 3})
	if g.Selected != pawn || !sameSquares(g.Candidates, want) {
		t.Fatalf("candidates: got=%v want=%v", g.Candidates, want)
	}

	// 点一个不在候选里的格子：清掉选择
	if g.SelectOrMove(SquareAt(6, 6)) || g.Selected != NoSquare {
		t.Fatalf("clicking an empty non-candidate square should deselect")
	}

	// 再点同一个子：取消
	g.SelectOrMove(pawn)
	g.SelectOrMove(pawn)
	if g.Selected != NoSquare {
		t.Fatalf("clicking the selected piece again should deselect")
	}

	g.SelectOrMove(pawn)
	if !g.SelectOrMove(SquareAt(7, 4)) {
		t.Fatalf("clicking a candidate should move")
	}
	if g.Turn != Han || len(g.History) != 1 || g.Selected != NoSquare || g.Candidates != nil {
		t.Fatalf("after move: turn=%s history=%d selected=%s", g.Turn, len(g.History), g.Selected)
	}
	rec := g.History[0]
	if rec.Notation != "e6e7" || rec.Kind != PiecePawn || rec.Side != Cho || rec.Captured != PieceNone {
		t.Fatalf("record: got=%+v", rec)
	}
	if rec.FENBefore != InitialFEN || rec.FENAfter != g.Board.Encode() {
		t.Fatalf("record FEN snapshots do not match")
	}
	if !g.Board.At(SquareAt(7, 4)).Moved {
		t.Fatalf("moved piece should be marked")
	}
}

// 吃掉对方侧翼将，该翼失效；再吃掉这个吃将的子，该翼恢复
func TestFlankDeactivationPairing(t *testing.T) {
	var b Board
	put(&b, 11, 7, 'k')
	put(&b, 2, 7, 'K')
	put(&b, 2, 1, 'Q')
	put(&b, 2, 4, 'R')
	put(&b, 5, 0, 'P')
	put(&b, 6, 1, 'r')
	g := gameFromBoard(t, b)

	rec, err := g.Play(SquareAt(6, 1), SquareAt(2, 1))
	if err != nil {
		t.Fatalf("capture general: %v", err)
	}
	if rec.Captured != PieceGeneral {
		t.Fatalf("captured: got=%s want=general", rec.Captured)
	}
	if g.Flanks.Len() != 1 || !g.Flanks.Has(HanLeft) {
		t.Fatalf("flanks after general capture: got=%v", g.Flanks.Keys())
	}
	if rec.FlanksAfter != g.Flanks {
		t.Fatalf("record flank snapshot: got=%v want=%v", rec.FlanksAfter, g.Flanks)
	}
	if debt := g.Board.At(SquareAt(2, 1)).Debt; !debt.Has(HanLeft) {
		t.Fatalf("captor should carry the debt: got=%v", debt.Keys())
	}

	// 左翼的步现在不能选，也不能走
	g.SelectOrMove(SquareAt(5, 0))
	if g.Selected != NoSquare {
		t.Fatalf("piece on a deactivated flank was selected")
	}
	if _, err := g.Play(SquareAt(5, 0), SquareAt(6, 0)); !errors.Is(err, ErrFlankDeactivated) {
		t.Fatalf("play on deactivated flank: got=%v", err)
	}
	if got := g.LegalMoves(SquareAt(5, 0)); got != nil {
		t.Fatalf("locked piece legal moves: got=%v", got)
	}
	// 王不受影响
	if g.Locked(SquareAt(2, 7)) {
		t.Fatalf("king must never be locked")
	}

	if _, err := g.Play(SquareAt(2, 4), SquareAt(2, 1)); err != nil {
		t.Fatalf("recapture: %v", err)
	}
	if g.Flanks != 0 {
		t.Fatalf("flank should be restored: got=%v", g.Flanks.Keys())
	}
	if g.Turn != Cho || len(g.History) != 2 {
		t.Fatalf("turn alternation: turn=%s history=%d", g.Turn, len(g.History))
	}
}

func TestDebtsSurviveHistoryJumps(t *testing.T) {
	var b Board
	put(&b, 11, 7, 'k')
	put(&b, 2, 7, 'K')
	put(&b, 2, 1, 'Q')
	put(&b, 2, 4, 'R')
	put(&b, 6, 1, 'r')
	g := gameFromBoard(t, b)

	if _, err := g.Play(SquareAt(6, 1), SquareAt(2, 1)); err != nil {
		t.Fatalf("capture general: %v", err)
	}
	if err := g.GoToHistory(0); err != nil {
		t.Fatalf("GoToHistory(0): %v", err)
	}
	if err := g.GoToHistory(1); err != nil {
		t.Fatalf("GoToHistory(1): %v", err)
	}
	if _, err := g.Play(SquareAt(2, 4), SquareAt(2, 1)); err != nil {
		t.Fatalf("recapture: %v", err)
	}
	if g.Flanks != 0 {
		t.Fatalf("debt lost across history jump: flanks=%v", g.Flanks.Keys())
	}
}

func TestKingCaptureEndsGame(t *testing.T) {
	var b Board
	put(&b, 11, 7, 'k')
	put(&b, 2, 7, 'K')
	put(&b, 6, 7, 'r')
	g := gameFromBoard(t, b)

	if g.InCheck != NoSide {
		t.Fatalf("cho to move is not in check: got=%s", g.InCheck)
	}
	rec, err := g.Play(SquareAt(6, 7), SquareAt(2, 7))
	if err != nil {
		t.Fatalf("capture king: %v", err)
	}
	if rec.Captured != PieceKing || !g.Over || g.Winner != Cho {
		t.Fatalf("game over: over=%v winner=%s", g.Over, g.Winner)
	}
	if g.Turn != Cho {
		t.Fatalf("turn must not flip after the king is taken: got=%s", g.Turn)
	}
	if g.SelectOrMove(SquareAt(11, 7)) || g.Selected != NoSquare {
		t.Fatalf("selection after game over must be a no-op")
	}
	if _, err := g.Play(SquareAt(11, 7), SquareAt(11, 6)); !errors.Is(err, ErrGameOver) {
		t.Fatalf("play after game over: got=%v", err)
	}
	if g.AllLegalMoves() != nil {
		t.Fatalf("no legal moves after game over")
	}

	// 回看再回到最后一步，轮次保持不变
	if err := g.GoToHistory(0); err != nil {
		t.Fatalf("GoToHistory(0): %v", err)
	}
	if err := g.GoToHistory(1); err != nil {
		t.Fatalf("GoToHistory(1): %v", err)
	}
	if g.Turn != Cho {
		t.Fatalf("tip turn after game over: got=%s want=cho", g.Turn)
	}
}

func TestInCheckAfterMove(t *testing.T) {
	var b Board
	put(&b, 11, 7, 'k')
	put(&b, 2, 7, 'K')
	put(&b, 6, 5, 'r')
	g := gameFromBoard(t, b)

	if _, err := g.Play(SquareAt(6, 5), SquareAt(6, 7)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if g.InCheck != Han {
		t.Fatalf("han should be in check: got=%s", g.InCheck)
	}
}

func TestPlayValidation(t *testing.T) {
	g := NewGame()
	cases := []struct {
		from, to Square
		want     error
	}{
		{SquareAt(7, 7), SquareAt(6, 7), ErrNoPiece},
		{SquareAt(5, 0), SquareAt(6, 0), ErrNotYourTurn},
		{SquareAt(8, 4), SquareAt(6, 4), ErrIllegalMove},
	}
	for _, tc := range cases {
		if _, err := g.Play(tc.from, tc.to); !errors.Is(err, tc.want) {
			t.Fatalf("Play(%s,%s): got=%v want=%v", tc.from, tc.to, err, tc.want)
		}
	}
	if len(g.History) != 0 || g.Board.Encode() != InitialFEN {
		t.Fatalf("rejected moves must not change the game")
	}
}

func TestApplyMoveRejectsEmptySource(t *testing.T) {
	g := NewGame()
	if _, ok := g.ApplyMove(SquareAt(7, 7), SquareAt(6, 7)); ok {
		t.Fatalf("ApplyMove from an empty square should fail")
	}
	if _, ok := g.ApplyMove(NoSquare, SquareAt(6, 7)); ok {
		t.Fatalf("ApplyMove from NoSquare should fail")
	}
}

func TestApplyMoveRejectsWrongSideAndOwnCapture(t *testing.T) {
	g := NewGame()

	// 초 先走，한 的卒不能动
	if _, ok := g.ApplyMove(SquareAt(5, 0), SquareAt(6, 0)); ok {
		t.Fatalf("ApplyMove out of turn should fail")
	}
	// 不能吃自己的子，更不能吃自己的侧翼将
	if _, ok := g.ApplyMove(SquareAt(8, 4), SquareAt(8, 5)); ok {
		t.Fatalf("ApplyMove onto an own piece should fail")
	}
	if _, ok := g.ApplyMove(SquareAt(11, 3), SquareAt(11, 1)); ok {
		t.Fatalf("ApplyMove onto an own general should fail")
	}
	if len(g.History) != 0 || g.Turn != Cho || g.Flanks != 0 || g.Board.Encode() != InitialFEN {
		t.Fatalf("rejected ApplyMove must not change the game")
	}

	if _, ok := g.ApplyMove(SquareAt(8, 4), SquareAt(7, 4)); !ok {
		t.Fatalf("ApplyMove for the side to move should succeed")
	}
	if _, ok := g.ApplyMove(SquareAt(8, 5), SquareAt(7, 5)); ok {
		t.Fatalf("초 must not move twice in a row")
	}
	if g.Turn != Han || len(g.History) != 1 {
		t.Fatalf("turn after one move: got=%s history=%d", g.Turn, len(g.History))
	}
}

func TestReset(t *testing.T) {
	g := NewGame()
	if _, err := g.Play(SquareAt(8, 4), SquareAt(7, 4)); err != nil {
		t.Fatalf("play: %v", err)
	}
	g.Reset()
	if len(g.History) != 0 || g.Turn != Cho || g.Board.Encode() != InitialFEN || g.ViewIndex != 0 {
		t.Fatalf("reset did not restore the initial game")
	}
}
