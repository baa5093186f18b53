package khs

// 区域模型：六个宫、宫内斜线、内营/外营/外营之外。全部在 init 里建好，之后只读。

type PalaceKey int8

const (
	NoPalace PalaceKey = iota - 1
	PalaceChoMain
	PalaceChoLeft
	PalaceChoRight
	PalaceHanMain
	PalaceHanLeft
	PalaceHanRight

	numPalaces = 6
)

func (k PalaceKey) Side() Side {
	switch k {
	case PalaceChoMain, PalaceChoLeft, PalaceChoRight:
		return Cho
	case PalaceHanMain, PalaceHanLeft, PalaceHanRight:
		return Han
	}
	return NoSide
}

func (k PalaceKey) Main() bool { return k == PalaceChoMain || k == PalaceHanMain }

type rect struct{ r1, c1, r2, c2 int }

func (r rect) contains(row, col int) bool {
	return row >= r.r1 && row <= r.r2 && col >= r.c1 && col <= r.c2
}

func (r rect) center() (int, int) { return (r.r1 + r.r2) / 2, (r.c1 + r.c2) / 2 }

var palaceRects = [numPalaces]rect{
	PalaceChoMain:  {10, 6, 12, 8},
	PalaceChoLeft:  {10, 0, 12, 2},
	PalaceChoRight: {10, 12, 12, 14},
	PalaceHanMain:  {1, 6, 3, 8},
	PalaceHanLeft:  {1, 0, 3, 2},
	PalaceHanRight: {1, 12, 3, 14},
}

var (
	innerAreas = [2]rect{
		Cho: {10, 4, 12, 10},
		Han: {1, 4, 3, 10},
	}
	outerAreaBounds = [2]rect{
		Cho: {9, 3, 13, 11},
		Han: {0, 3, 4, 11},
	}
)

var (
	// 每个宫两条斜线：角 -> 中心 -> 对角
	palaceDiagonals [numPalaces][2][3]Square
	// 宫内斜线上相邻两点的邻接表，按宫的所属方分开
	palaceDiagNeighbors [2][NumSquares][]Square
	palaceOf            [NumSquares]PalaceKey
)

func init() {
	initZones()
	initRays() // 射线表依赖宫的斜线
}

func initZones() {
	for sq := range palaceOf {
		palaceOf[sq] = NoPalace
	}
	for k := PalaceKey(0); k < numPalaces; k++ {
		r := palaceRects[k]
		for row := r.r1; row <= r.r2; row++ {
			for col := r.c1; col <= r.c2; col++ {
				palaceOf[indexOf(row, col)] = k
			}
		}

		cr, cc := r.center()
		center := SquareAt(cr, cc)
		palaceDiagonals[k] = [2][3]Square{
			{SquareAt(r.r1, r.c1), center, SquareAt(r.r2, r.c2)},
			{SquareAt(r.r1, r.c2), center, SquareAt(r.r2, r.c1)},
		}

		side := k.Side()
		for _, path := range palaceDiagonals[k] {
			for i := 0; i+1 < len(path); i++ {
				a, b := path[i], path[i+1]
				palaceDiagNeighbors[side][a] = append(palaceDiagNeighbors[side][a], b)
				palaceDiagNeighbors[side][b] = append(palaceDiagNeighbors[side][b], a)
			}
		}
	}
}

func sidePalaces(side Side) []PalaceKey {
	switch side {
	case Cho:
		return []PalaceKey{PalaceChoMain, PalaceChoLeft, PalaceChoRight}
	case Han:
		return []PalaceKey{PalaceHanMain, PalaceHanLeft, PalaceHanRight}
	}
	return nil
}

// PalaceAt 该格所在的宫（不分阵营），不在宫内返回 NoPalace
func PalaceAt(sq Square) PalaceKey {
	if !sq.Valid() {
		return NoPalace
	}
	return palaceOf[sq]
}

// InPalace key 给定时只看这一个宫；否则看 side 的主宫，mainOnly 为 false 时再加两翼宫。
func InPalace(sq Square, side Side, key PalaceKey, mainOnly bool) bool {
	if !sq.Valid() {
		return false
	}
	at := palaceOf[sq]
	if at == NoPalace {
		return false
	}
	if key != NoPalace {
		return at == key
	}
	if at.Side() != side {
		return false
	}
	return !mainOnly || at.Main()
}

// IsValidPalaceDiagonalStep {a,b} 恰好是 side 某个宫斜线上的一段（与方向无关）。
// 查表而不是几何判断：只有角-中心这几段可以斜走。
func IsValidPalaceDiagonalStep(a, b Square, side Side) bool {
	if !a.Valid() || !b.Valid() || side == NoSide {
		return false
	}
	for _, n := range palaceDiagNeighbors[side][a] {
		if n == b {
			return true
		}
	}
	return false
}

func InInnerArea(sq Square, side Side) bool {
	if !sq.Valid() || side == NoSide {
		return false
	}
	return innerAreas[side].contains(sq.Row(), sq.Col())
}

// InOuterArea 外营 = 外营边界 - 内营
func InOuterArea(sq Square, side Side) bool {
	if !sq.Valid() || side == NoSide {
		return false
	}
	if !outerAreaBounds[side].contains(sq.Row(), sq.Col()) {
		return false
	}
	return !InInnerArea(sq, side)
}

// InOuterOuterArea 棋盘内、不在内营/外营/主宫的格子
func InOuterOuterArea(sq Square, side Side) bool {
	if !sq.Valid() || side == NoSide {
		return false
	}
	return !InInnerArea(sq, side) && !InOuterArea(sq, side) && !InPalace(sq, side, NoPalace, true)
}
