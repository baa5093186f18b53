package khs

import "sync"

const numFlanks = 3

var (
	zobristOnce sync.Once

	// [side][kind][flank][square]
	zobristPieces [2][numPieceKinds][numFlanks][NumSquares]uint64
	zobristSide   uint64
	zobristFlanks [numFlankKeys]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for kind := 1; kind < numPieceKinds; kind++ {
				for f := 0; f < numFlanks; f++ {
					for sq := 0; sq < NumSquares; sq++ {
						zobristPieces[side][kind][f][sq] = next()
					}
				}
			}
		}
		zobristSide = next()
		for k := range zobristFlanks {
			zobristFlanks[k] = next()
		}
	})
}

func pieceHashKey(pc Piece, sq Square) uint64 {
	if pc.Empty() || !sq.Valid() {
		return 0
	}
	if pc.Side != Cho && pc.Side != Han {
		return 0
	}
	if pc.Kind <= PieceNone || int(pc.Kind) >= numPieceKinds {
		return 0
	}
	if pc.Flank < 0 || pc.Flank >= numFlanks {
		return 0
	}
	return zobristPieces[pc.Side][pc.Kind][pc.Flank][sq]
}

// Hash 棋盘的 Zobrist 哈希：种类、阵营、所属翼、位置。
// 走过标记和欠债不影响走法，不计入。
func (b *Board) Hash() uint64 {
	initZobrist()

	var h uint64
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := b.Squares[sq]
		if pc.Empty() {
			continue
		}
		h ^= pieceHashKey(pc, sq)
	}
	return h
}

// PositionKey 棋盘哈希再加上轮到谁走和失效的翼，走法缓存用它做 key
func (b *Board) PositionKey(turn Side, flanks FlankState) uint64 {
	h := b.Hash()
	if turn == Han {
		h ^= zobristSide
	}
	for _, k := range flanks.Keys() {
		h ^= zobristFlanks[k]
	}
	return h
}
