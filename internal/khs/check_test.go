package khs

import "testing"

func TestIsInCheck(t *testing.T) {
	var b Board
	put(&b, 11, 7, 'k')
	put(&b, 2, 7, 'K')
	if b.IsInCheck(Cho) || b.IsInCheck(Han) {
		t.Fatalf("no attackers, nobody should be in check")
	}
	put(&b, 5, 7, 'R')
	if !b.IsInCheck(Cho) {
		t.Fatalf("chariot on open file should give check")
	}
	put(&b, 8, 7, 'p')
	if b.IsInCheck(Cho) {
		t.Fatalf("blocked chariot should not give check")
	}
}

func TestIsInCheckWithoutKing(t *testing.T) {
	var b Board
	put(&b, 5, 7, 'R')
	if b.IsInCheck(Cho) {
		t.Fatalf("missing king must report no check")
	}
	if _, ok := b.FindKing(Cho); ok {
		t.Fatalf("FindKing on empty side: got ok")
	}
}

func TestAmbushAttacksEmptySquares(t *testing.T) {
	var b Board
	put(&b, 7, 7, 'M')
	if !b.IsAttacked(SquareAt(10, 6), Han) {
		t.Fatalf("ambush range should attack (10,6) even when empty")
	}
	if b.IsAttacked(SquareAt(9, 7), Han) {
		t.Fatalf("ambush does not attack its lane")
	}
}

func TestPinnedPieceCannotExposeKing(t *testing.T) {
	var b Board
	put(&b, 11, 7, 'k')
	put(&b, 2, 6, 'K')
	put(&b, 9, 7, 'r')
	put(&b, 5, 7, 'R')
	moves := b.LegalMoves(SquareAt(9, 7))
	if containsSquare(moves, SquareAt(9, 6)) {
		t.Fatalf("pinned chariot stepped aside: %v", moves)
	}
	if !containsSquare(moves, SquareAt(8, 7)) || !containsSquare(moves, SquareAt(5, 7)) {
		t.Fatalf("pinned chariot should move along the pin: %v", moves)
	}
}

func TestNoSelfCheckFromInitialPosition(t *testing.T) {
	g := NewGame()
	for ply := 0; ply < 16 && !g.Over; ply++ {
		moves := g.AllLegalMoves()
		if len(moves) == 0 {
			t.Fatalf("no legal moves at ply %d", ply)
		}
		for _, mv := range moves {
			nb := g.Board
			nb.move(mv.From, mv.To)
			if nb.IsInCheck(g.Turn) {
				t.Fatalf("ply %d: %s leaves own king in check", ply, mv)
			}
		}
		mv := moves[(ply*7)%len(moves)]
		if _, err := g.Play(mv.From, mv.To); err != nil {
			t.Fatalf("ply %d: play %s: %v", ply, mv, err)
		}
	}
}

func TestInitialKingNeverStepsIntoAttack(t *testing.T) {
	b := NewInitialBoard()
	for _, side := range []Side{Cho, Han} {
		king, ok := b.FindKing(side)
		if !ok {
			t.Fatalf("no %s king in the initial position", side)
		}
		for _, to := range b.LegalMoves(king) {
			if b.IsAttacked(to, side.Opponent()) {
				t.Fatalf("%s king may move to attacked %s", side, to)
			}
		}
	}
}
