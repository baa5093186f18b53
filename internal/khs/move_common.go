package khs

var (
	// 每格四个正交方向的射线（由近到远）
	orthoRays [NumSquares][4][]Square
	// 每格在宫内斜线上的射线：只有斜线上的点才有，中心点有四条
	palaceRays [NumSquares][][]Square
)

func initRays() {
	for sq := Square(0); sq < NumSquares; sq++ {
		row, col := sq.Row(), sq.Col()
		for i, d := range rookDirs {
			var ray []Square
			for r, c := row+d[0], col+d[1]; onBoard(r, c); r, c = r+d[0], c+d[1] {
				ray = append(ray, SquareAt(r, c))
			}
			orthoRays[sq][i] = ray
		}
	}

	for k := PalaceKey(0); k < numPalaces; k++ {
		for _, path := range palaceDiagonals[k] {
			for idx, sq := range path {
				if idx+1 < len(path) {
					fwd := append([]Square(nil), path[idx+1:]...)
					palaceRays[sq] = append(palaceRays[sq], fwd)
				}
				if idx > 0 {
					var back []Square
					for j := idx - 1; j >= 0; j-- {
						back = append(back, path[j])
					}
					palaceRays[sq] = append(palaceRays[sq], back)
				}
			}
		}
	}
}

// walkRay 沿射线走：空格可走；遇到第一个子停，敌子且 capture 允许时可吃。
// stop 返回 true 的格子及其之后都到不了。
func walkRay(b *Board, side Side, ray []Square, stop func(Square) bool, capture func(Piece) bool, moves *[]Square) {
	for _, to := range ray {
		if stop != nil && stop(to) {
			return
		}
		pc := b.Squares[to]
		if pc.Empty() {
			*moves = append(*moves, to)
			continue
		}
		if pc.Side != side && (capture == nil || capture(pc)) {
			*moves = append(*moves, to)
		}
		return
	}
}

// 车：横竖滑行；站在任意宫内斜线上时可沿斜线滑行
func genChariotMoves(b *Board, from Square, moves *[]Square) {
	genChariotRays(b, from, nil, nil, moves)
}

func genChariotRays(b *Board, from Square, stop func(Square) bool, capture func(Piece) bool, moves *[]Square) {
	side := b.Squares[from].Side
	for _, ray := range orthoRays[from] {
		walkRay(b, side, ray, stop, capture, moves)
	}
	for _, ray := range palaceRays[from] {
		walkRay(b, side, ray, stop, capture, moves)
	}
}

// 포：必须隔一个非炮的子才能走/吃；不能吃炮；己方宫角可隔中心斜跳到对角
func genCannonMoves(b *Board, from Square, moves *[]Square) {
	side := b.Squares[from].Side
	for _, ray := range orthoRays[from] {
		jumped := false
		for _, to := range ray {
			pc := b.Squares[to]
			if !jumped {
				if pc.Empty() {
					continue
				}
				if pc.Kind == PieceCannon {
					break // 炮不能当炮架
				}
				jumped = true
				continue
			}
			if pc.Empty() {
				*moves = append(*moves, to)
				continue
			}
			if pc.Kind != PieceCannon && pc.Side != side {
				*moves = append(*moves, to)
			}
			break
		}
	}

	k := palaceOf[from]
	if k == NoPalace || k.Side() != side {
		return
	}
	r := palaceRects[k]
	row, col := from.Row(), from.Col()
	if (row != r.r1 && row != r.r2) || (col != r.c1 && col != r.c2) {
		return // 不在宫角
	}
	screen := b.Squares[SquareAt(r.center())]
	if screen.Empty() || screen.Kind == PieceCannon {
		return
	}
	to := SquareAt(r.r1+r.r2-row, r.c1+r.c2-col)
	dst := b.Squares[to]
	if dst.Empty() || (dst.Side != side && dst.Kind != PieceCannon) {
		*moves = append(*moves, to)
	}
}

// palaceStepMoves 己方三宫内八方向一步，斜走必须在宫内斜线上
func palaceStepMoves(b *Board, from Square, moves *[]Square) {
	side := b.Squares[from].Side
	row, col := from.Row(), from.Col()
	for _, d := range kingDirs {
		to := SquareAt(row+d[0], col+d[1])
		if to == NoSquare {
			continue
		}
		if !InPalace(to, side, NoPalace, false) {
			continue
		}
		if d[0] != 0 && d[1] != 0 && !IsValidPalaceDiagonalStep(from, to, side) {
			continue
		}
		dst := b.Squares[to]
		if dst.Empty() || dst.Side != side {
			*moves = append(*moves, to)
		}
	}
}

// 王的基础走法（不看安全），攻击判断用这个，避免和安全过滤互相递归
func genKingBaseMoves(b *Board, from Square, moves *[]Square) {
	palaceStepMoves(b, from, moves)
}

// 수/장：基础走法再去掉被对方攻击的格子（在当前盘面上判断）
func genKingMoves(b *Board, from Square, moves *[]Square) {
	var base []Square
	genKingBaseMoves(b, from, &base)
	opp := opposite(b.Squares[from].Side)
	for _, to := range base {
		if !b.IsAttacked(to, opp) {
			*moves = append(*moves, to)
		}
	}
}

// 사：和王的基础走法相同，没有安全过滤
func genGuardMoves(b *Board, from Square, moves *[]Square) {
	palaceStepMoves(b, from, moves)
}
