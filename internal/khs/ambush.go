package khs

// 복：不能走空格，只能吃。四个正交方向上，紧挨着的两格都空时，
// 再往外一格的左右两斜格就是它的攻击范围。
func ambushAttackRange(b *Board, from Square, out *[]Square) {
	row, col := from.Row(), from.Col()
	for _, d := range rookDirs {
		r1, c1 := row+d[0], col+d[1]
		r2, c2 := row+2*d[0], col+2*d[1]
		if !onBoard(r1, c1) || !onBoard(r2, c2) {
			continue
		}
		if !b.Squares[indexOf(r1, c1)].Empty() || !b.Squares[indexOf(r2, c2)].Empty() {
			continue
		}
		var targets [2][2]int
		if d[0] != 0 {
			targets = [2][2]int{{r2 + d[0], c2 - 1}, {r2 + d[0], c2 + 1}}
		} else {
			targets = [2][2]int{{r2 - 1, c2 + d[1]}, {r2 + 1, c2 + d[1]}}
		}
		for _, t := range targets {
			if to := SquareAt(t[0], t[1]); to != NoSquare {
				*out = append(*out, to)
			}
		}
	}
}

// AttackRange 복 的原始攻击范围（不管目标格有没有子）
func (b *Board) AttackRange(from Square) []Square {
	if !from.Valid() || b.Squares[from].Kind != PieceAmbush {
		return nil
	}
	var out []Square
	ambushAttackRange(b, from, &out)
	return out
}

func genAmbushMoves(b *Board, from Square, moves *[]Square) {
	side := b.Squares[from].Side
	var rng []Square
	ambushAttackRange(b, from, &rng)
	for _, to := range rng {
		dst := b.Squares[to]
		if !dst.Empty() && dst.Side != side {
			*moves = append(*moves, to)
		}
	}
}
