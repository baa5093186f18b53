package khs

// IsAttacked 判断 sq 是否被 by 这一方攻击。
// 采用走法模拟：对方任何一个棋子能“走到”这里就算被攻击。
// 王/将用基础走法（不做安全过滤，否则和王的安全过滤互相递归），복 用原始攻击范围。
func (b *Board) IsAttacked(sq Square, by Side) bool {
	if !sq.Valid() {
		return false
	}
	var moves []Square
	for s := Square(0); s < NumSquares; s++ {
		pc := b.Squares[s]
		if pc.Empty() || pc.Side != by {
			continue
		}
		moves = moves[:0]
		switch pc.Kind {
		case PieceKing, PieceGeneral:
			genKingBaseMoves(b, s, &moves)
		case PieceAmbush:
			ambushAttackRange(b, s, &moves)
		default:
			b.genPseudo(s, &moves)
		}
		for _, to := range moves {
			if to == sq {
				return true
			}
		}
	}
	return false
}

// FindKing 找 side 的 수，没有返回 false
func (b *Board) FindKing(side Side) (Square, bool) {
	for s := Square(0); s < NumSquares; s++ {
		pc := b.Squares[s]
		if pc.Kind == PieceKing && pc.Side == side {
			return s, true
		}
	}
	return NoSquare, false
}

// IsInCheck 判断 side 这一方的王是否被将军；没有王时返回 false
func (b *Board) IsInCheck(side Side) bool {
	kingSq, ok := b.FindKing(side)
	if !ok {
		return false
	}
	return b.IsAttacked(kingSq, opposite(side))
}
