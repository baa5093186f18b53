package khs

type Side int8

const (
	NoSide Side = -1
	Cho    Side = 0 // 先手，小写
	Han    Side = 1 // 后手，大写
)

func (s Side) String() string {
	switch s {
	case Cho:
		return "cho"
	case Han:
		return "han"
	default:
		return "none"
	}
}

type PieceKind int8

const (
	PieceNone      PieceKind = iota
	PieceKing                // 수 帥
	PieceGeneral             // 장 將（侧翼将，被吃后该翼失效）
	PieceChariot             // 차 車
	PieceCannon              // 포 包
	PieceHorse               // 마 馬
	PieceElephant            // 상 象
	PieceGuard               // 사 士
	PiecePawn                // 보 步
	PieceCavalry             // 기 騎
	PieceAmbush              // 복 伏
	PieceRover               // 유 遊
	PieceLancer              // 기 奇
	PieceVanguard            // 전 前
	PieceRearguard           // 후 後

	numPieceKinds = iota
)

var pieceKindNames = [numPieceKinds]string{
	PieceNone:      "none",
	PieceKing:      "king",
	PieceGeneral:   "general",
	PieceChariot:   "chariot",
	PieceCannon:    "cannon",
	PieceHorse:     "horse",
	PieceElephant:  "elephant",
	PieceGuard:     "guard",
	PiecePawn:      "pawn",
	PieceCavalry:   "cavalry",
	PieceAmbush:    "ambush",
	PieceRover:     "rover",
	PieceLancer:    "lancer",
	PieceVanguard:  "vanguard",
	PieceRearguard: "rearguard",
}

func (k PieceKind) String() string {
	if k < 0 || int(k) >= numPieceKinds {
		return "unknown"
	}
	return pieceKindNames[k]
}

// Flank 棋子所属的一翼，由开局所在列决定
type Flank int8

const (
	FlankCenter Flank = iota
	FlankLeft
	FlankRight
)

func (f Flank) String() string {
	switch f {
	case FlankLeft:
		return "left"
	case FlankRight:
		return "right"
	default:
		return "center"
	}
}

// flankOfCol 开局列 <4 左翼，>10 右翼，其余中军
func flankOfCol(col int) Flank {
	if col < 4 {
		return FlankLeft
	}
	if col > 10 {
		return FlankRight
	}
	return FlankCenter
}

// Piece 零值即空格。位置就是它在 Board.Squares 里的下标，不单独存。
type Piece struct {
	Kind  PieceKind
	Side  Side
	Moved bool
	Flank Flank
	// Debt 这枚棋子吃掉对方侧翼将后欠下的“债”：被吃时这些翼重新激活
	Debt FlankState
}

func (p Piece) Empty() bool { return p.Kind == PieceNone }

func makePiece(side Side, kind PieceKind, col int) Piece {
	if kind == PieceNone || side == NoSide {
		return Piece{}
	}
	return Piece{Kind: kind, Side: side, Flank: flankOfCol(col)}
}

type Board struct {
	Squares [NumSquares]Piece
}

// At 越界返回空子
func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return b.Squares[sq]
}

// move 只搬子，不处理吃将/失效等副作用
func (b *Board) move(from, to Square) {
	pc := b.Squares[from]
	b.Squares[to] = pc
	b.Squares[from] = Piece{}
}
