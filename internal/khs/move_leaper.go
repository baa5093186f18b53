package khs

// 跳子：终点 + 途经的“腿”，任一条腿有子（不分敌我）整步作废
type leapMove struct {
	Dr, Dc int
	Legs   [][2]int
}

// 마：日字，一条腿
var horseLeaps = [8]leapMove{
	{-2, -1, [][2]int{{-1, 0}}},
	{-2, +1, [][2]int{{-1, 0}}},
	{+2, -1, [][2]int{{+1, 0}}},
	{+2, +1, [][2]int{{+1, 0}}},
	{-1, -2, [][2]int{{0, -1}}},
	{-1, +2, [][2]int{{0, +1}}},
	{+1, -2, [][2]int{{0, -1}}},
	{+1, +2, [][2]int{{0, +1}}},
}

// 상：3-2 跳，两条腿（先直一格，再斜一格）
var elephantLeaps = [8]leapMove{
	{-3, -2, [][2]int{{-1, 0}, {-2, -1}}},
	{-3, +2, [][2]int{{-1, 0}, {-2, +1}}},
	{+3, -2, [][2]int{{+1, 0}, {+2, -1}}},
	{+3, +2, [][2]int{{+1, 0}, {+2, +1}}},
	{-2, -3, [][2]int{{0, -1}, {-1, -2}}},
	{-2, +3, [][2]int{{0, +1}, {-1, +2}}},
	{+2, -3, [][2]int{{0, -1}, {+1, -2}}},
	{+2, +3, [][2]int{{0, +1}, {+1, +2}}},
}

// 유：斜跳两格，中间一格必须空
var roverLeaps = [4]leapMove{
	{-2, -2, [][2]int{{-1, -1}}},
	{-2, +2, [][2]int{{-1, +1}}},
	{+2, -2, [][2]int{{+1, -1}}},
	{+2, +2, [][2]int{{+1, +1}}},
}

func genLeaps(b *Board, from Square, table []leapMove, moves *[]Square) {
	row, col := from.Row(), from.Col()
	side := b.Squares[from].Side
next:
	for _, m := range table {
		for _, leg := range m.Legs {
			lr, lc := row+leg[0], col+leg[1]
			if !onBoard(lr, lc) || !b.Squares[indexOf(lr, lc)].Empty() {
				continue next // 蹩腿
			}
		}
		to := SquareAt(row+m.Dr, col+m.Dc)
		if to == NoSquare {
			continue
		}
		dst := b.Squares[to]
		if dst.Empty() || dst.Side != side {
			*moves = append(*moves, to)
		}
	}
}

func genHorseMoves(b *Board, from Square, moves *[]Square) {
	genLeaps(b, from, horseLeaps[:], moves)
}

func genElephantMoves(b *Board, from Square, moves *[]Square) {
	genLeaps(b, from, elephantLeaps[:], moves)
}

func genRoverMoves(b *Board, from Square, moves *[]Square) {
	genLeaps(b, from, roverLeaps[:], moves)
}
