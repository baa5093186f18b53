package khs

// genPseudo 按棋子种类分派到各自的走法生成
func (b *Board) genPseudo(sq Square, moves *[]Square) {
	switch b.Squares[sq].Kind {
	case PieceKing, PieceGeneral:
		genKingMoves(b, sq, moves)
	case PieceChariot:
		genChariotMoves(b, sq, moves)
	case PieceCannon:
		genCannonMoves(b, sq, moves)
	case PieceHorse:
		genHorseMoves(b, sq, moves)
	case PieceElephant:
		genElephantMoves(b, sq, moves)
	case PieceGuard:
		genGuardMoves(b, sq, moves)
	case PiecePawn:
		genPawnMoves(b, sq, moves)
	case PieceCavalry:
		genCavalryMoves(b, sq, moves)
	case PieceAmbush:
		genAmbushMoves(b, sq, moves)
	case PieceRover:
		genRoverMoves(b, sq, moves)
	case PieceLancer:
		genLancerMoves(b, sq, moves)
	case PieceVanguard:
		genVanguardMoves(b, sq, moves)
	case PieceRearguard:
		genRearguardMoves(b, sq, moves)
	}
}

// PseudoMoves 伪合法走法（不考虑走完后自己的王是否被将）。空格返回 nil。
func (b *Board) PseudoMoves(sq Square) []Square {
	if !sq.Valid() || b.Squares[sq].Empty() {
		return nil
	}
	var moves []Square
	b.genPseudo(sq, &moves)
	return moves
}

// LegalMoves 在棋盘副本上试走每一步，只留下走完后己方王不被将的
func (b *Board) LegalMoves(sq Square) []Square {
	pseudo := b.PseudoMoves(sq)
	if len(pseudo) == 0 {
		return nil
	}
	side := b.Squares[sq].Side
	out := make([]Square, 0, len(pseudo))
	for _, to := range pseudo {
		nb := *b
		nb.move(sq, to)
		if nb.IsInCheck(side) {
			continue
		}
		out = append(out, to)
	}
	return out
}

// Move 一步走法（from -> to）
type Move struct {
	From, To Square
}

func (m Move) String() string { return m.From.String() + m.To.String() }

// LegalMovesForSide side 所有可选棋子的合法走法；失效翼上的棋子不参与
func (b *Board) LegalMovesForSide(side Side, flanks FlankState) []Move {
	var out []Move
	for s := Square(0); s < NumSquares; s++ {
		pc := b.Squares[s]
		if pc.Empty() || pc.Side != side || pieceLocked(pc, flanks) {
			continue
		}
		for _, to := range b.LegalMoves(s) {
			out = append(out, Move{From: s, To: to})
		}
	}
	return out
}
