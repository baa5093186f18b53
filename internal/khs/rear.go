package khs

// 전：车的走法，但两方的内营和主宫都进不去（射线在禁区前停下），也不能吃对方的 전。
func vanguardRestricted(sq Square) bool {
	return InInnerArea(sq, Cho) || InInnerArea(sq, Han) ||
		InPalace(sq, Cho, NoPalace, true) || InPalace(sq, Han, NoPalace, true)
}

func notVanguard(pc Piece) bool { return pc.Kind != PieceVanguard }

func genVanguardMoves(b *Board, from Square, moves *[]Square) {
	genChariotRays(b, from, vanguardRestricted, notVanguard, moves)
}

// 후：车的走法。站在己方外营之外时不能动；
// 不能走进己方外营之外、对方主宫、对方内营。
func genRearguardMoves(b *Board, from Square, moves *[]Square) {
	side := b.Squares[from].Side
	if InOuterOuterArea(from, side) {
		return
	}
	opp := opposite(side)
	var cand []Square
	genChariotMoves(b, from, &cand)
	for _, to := range cand {
		if InOuterOuterArea(to, side) || InPalace(to, opp, NoPalace, true) || InInnerArea(to, opp) {
			continue
		}
		*moves = append(*moves, to)
	}
}
