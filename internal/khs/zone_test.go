package khs

import "testing"

func TestInPalace(t *testing.T) {
	cases := []struct {
		row, col int
		side     Side
		key      PalaceKey
		mainOnly bool
		want     bool
	}{
		{11, 7, Cho, NoPalace, true, true},
		{11, 1, Cho, NoPalace, false, true},
		{11, 1, Cho, NoPalace, true, false},
		{11, 13, Cho, PalaceChoRight, false, true},
		{11, 13, Cho, PalaceChoLeft, false, false},
		{2, 7, Cho, NoPalace, false, false},
		{2, 7, Han, NoPalace, true, true},
		{2, 7, Cho, PalaceHanMain, false, true},
		{7, 7, Han, NoPalace, false, false},
	}
	for _, tc := range cases {
		got := InPalace(SquareAt(tc.row, tc.col), tc.side, tc.key, tc.mainOnly)
		if got != tc.want {
			t.Fatalf("InPalace(%d,%d,%s,%d,%v): got=%v want=%v", tc.row, tc.col, tc.side, tc.key, tc.mainOnly, got, tc.want)
		}
	}
}

func TestPalaceDiagonalStepIsLookup(t *testing.T) {
	// 角 <-> 中心 可以，方向无关
	if !IsValidPalaceDiagonalStep(SquareAt(10, 6), SquareAt(11, 7), Cho) {
		t.Fatalf("corner to center should be valid")
	}
	if !IsValidPalaceDiagonalStep(SquareAt(11, 7), SquareAt(12, 6), Cho) {
		t.Fatalf("center to corner should be valid")
	}
	// 几何上是斜线，但不在宫的斜线上
	if IsValidPalaceDiagonalStep(SquareAt(11, 6), SquareAt(10, 7), Cho) {
		t.Fatalf("edge midpoints are not a palace diagonal segment")
	}
	// 角到对角不是一段
	if IsValidPalaceDiagonalStep(SquareAt(10, 6), SquareAt(12, 8), Cho) {
		t.Fatalf("corner to opposite corner is two segments")
	}
	// 阵营要对
	if IsValidPalaceDiagonalStep(SquareAt(10, 6), SquareAt(11, 7), Han) {
		t.Fatalf("cho palace segment must not count for han")
	}
	if !IsValidPalaceDiagonalStep(SquareAt(3, 14), SquareAt(2, 13), Han) {
		t.Fatalf("han right palace segment should be valid")
	}
}

func TestAreas(t *testing.T) {
	cases := []struct {
		row, col           int
		side               Side
		inner, outer, deep bool
	}{
		{11, 5, Cho, true, false, false},
		{13, 7, Cho, false, true, false},
		{9, 3, Cho, false, true, false},
		{11, 7, Cho, true, false, false},
		{11, 1, Cho, false, false, true}, // 侧宫不算主宫
		{7, 7, Cho, false, false, true},
		{2, 7, Cho, false, false, true},
		{2, 7, Han, true, false, false},
		{0, 7, Han, false, true, false},
		{4, 11, Han, false, true, false},
		{4, 12, Han, false, false, true},
	}
	for _, tc := range cases {
		sq := SquareAt(tc.row, tc.col)
		if got := InInnerArea(sq, tc.side); got != tc.inner {
			t.Fatalf("inner(%d,%d,%s): got=%v want=%v", tc.row, tc.col, tc.side, got, tc.inner)
		}
		if got := InOuterArea(sq, tc.side); got != tc.outer {
			t.Fatalf("outer(%d,%d,%s): got=%v want=%v", tc.row, tc.col, tc.side, got, tc.outer)
		}
		if got := InOuterOuterArea(sq, tc.side); got != tc.deep {
			t.Fatalf("outer-outer(%d,%d,%s): got=%v want=%v", tc.row, tc.col, tc.side, got, tc.deep)
		}
	}
	if InOuterOuterArea(NoSquare, Cho) {
		t.Fatalf("off-board square must not be outer-outer")
	}
}

func TestPalaceAt(t *testing.T) {
	if got := PalaceAt(SquareAt(2, 1)); got != PalaceHanLeft {
		t.Fatalf("PalaceAt(2,1): got=%d want=%d", got, PalaceHanLeft)
	}
	if got := PalaceAt(SquareAt(7, 7)); got != NoPalace {
		t.Fatalf("PalaceAt(7,7): got=%d want=%d", got, NoPalace)
	}
	if len(sidePalaces(Han)) != 3 || sidePalaces(NoSide) != nil {
		t.Fatalf("sidePalaces: unexpected result")
	}
}
