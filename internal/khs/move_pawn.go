package khs

// stepTo 一步落点：盘内且不是己方子
func stepTo(b *Board, side Side, row, col int, moves *[]Square) {
	to := SquareAt(row, col)
	if to == NoSquare {
		return
	}
	dst := b.Squares[to]
	if dst.Empty() || dst.Side != side {
		*moves = append(*moves, to)
	}
}

// 보：前进一格或左右一格；在任一方的宫内斜线上可以斜走一格
func genPawnMoves(b *Board, from Square, moves *[]Square) {
	row, col := from.Row(), from.Col()
	side := b.Squares[from].Side
	dir := forwardDir(side)

	stepTo(b, side, row+dir, col, moves)
	stepTo(b, side, row, col-1, moves)
	stepTo(b, side, row, col+1, moves)

	for _, d := range bishopDirs {
		to := SquareAt(row+d[0], col+d[1])
		if to == NoSquare {
			continue
		}
		if !IsValidPalaceDiagonalStep(from, to, Cho) && !IsValidPalaceDiagonalStep(from, to, Han) {
			continue
		}
		dst := b.Squares[to]
		if dst.Empty() || dst.Side != side {
			*moves = append(*moves, to)
		}
	}
}

// 기(騎)：前斜一格或左右一格，不能后退
func genCavalryMoves(b *Board, from Square, moves *[]Square) {
	row, col := from.Row(), from.Col()
	side := b.Squares[from].Side
	dir := forwardDir(side)

	stepTo(b, side, row+dir, col-1, moves)
	stepTo(b, side, row+dir, col+1, moves)
	stepTo(b, side, row, col-1, moves)
	stepTo(b, side, row, col+1, moves)
}

// 기(奇)：横竖最多走两格，遇子即停（敌子可吃）
func genLancerMoves(b *Board, from Square, moves *[]Square) {
	side := b.Squares[from].Side
	for _, ray := range orthoRays[from] {
		if len(ray) > 2 {
			ray = ray[:2]
		}
		walkRay(b, side, ray, nil, nil, moves)
	}
}
