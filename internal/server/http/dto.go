package httpserver

import (
	"khs/internal/khs"
	"khs/internal/server/game"
)

// 格子在前端用扁平下标 row*15+col 表示，-1 表示没有

// 前端用的招法结构
type MoveDTO struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Notation string `json:"notation,omitempty"`
}

type MoveRecordDTO struct {
	Side      int            `json:"side"`
	Piece     string         `json:"piece"`
	From      int            `json:"from"`
	To        int            `json:"to"`
	Notation  string         `json:"notation"`
	FENBefore string         `json:"fen_before"`
	FENAfter  string         `json:"fen_after"`
	Captured  string         `json:"captured,omitempty"`
	Flanks    khs.FlankState `json:"flanks_after"`
}

// NewGame 请求，fen 为空用标准开局
type NewGameRequest struct {
	FEN string `json:"fen,omitempty"`
}

// State 请求：前端刷新时用 game_id 来要当前盘面
type StateRequest struct {
	GameID string `json:"game_id"`
}

// Select 请求：一次点击
type SelectRequest struct {
	GameID string `json:"game_id"`
	Square int    `json:"square"`
}

type LegalMovesRequest struct {
	GameID string `json:"game_id"`
	Square int    `json:"square"`
}

type LegalMovesResponse struct {
	Square  int   `json:"square"`
	Targets []int `json:"targets"`
}

// Play 请求
type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

type HistoryRequest struct {
	GameID string `json:"game_id"`
	Index  int    `json:"index"`
}

type ResetRequest struct {
	GameID string `json:"game_id"`
}

// StateResponse 所有改动对局的接口都返回完整状态
type StateResponse struct {
	GameID     string          `json:"game_id"`
	Version    uint64          `json:"version"`
	Position   string          `json:"position"` // FEN
	ToMove     int             `json:"to_move"`  // 0=초, 1=한
	Status     string          `json:"status"`   // ongoing / check / over / no_moves / viewing
	Winner     int             `json:"winner"`   // -1 表示还没有
	InCheck    int             `json:"in_check"`
	Flanks     khs.FlankState  `json:"flanks"`
	Selected   int             `json:"selected"`
	Candidates []int           `json:"candidates"`
	LegalMoves []MoveDTO       `json:"legal_moves"`
	History    []MoveRecordDTO `json:"history"`
	ViewIndex  int             `json:"view_index"`
	Moved      bool            `json:"moved,omitempty"`
	LastMove   *MoveRecordDTO  `json:"last_move,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func sideToInt(s khs.Side) int {
	switch s {
	case khs.Cho:
		return 0
	case khs.Han:
		return 1
	default:
		return -1
	}
}

func squareToInt(sq khs.Square) int {
	if !sq.Valid() {
		return -1
	}
	return int(sq)
}

// intToSquare 越界的下标变成 NoSquare
func intToSquare(v int) khs.Square {
	sq := khs.Square(v)
	if !sq.Valid() {
		return khs.NoSquare
	}
	return sq
}

func squaresToInts(sqs []khs.Square) []int {
	out := make([]int, len(sqs))
	for i, sq := range sqs {
		out[i] = squareToInt(sq)
	}
	return out
}

func moveToDTO(m khs.Move) MoveDTO {
	return MoveDTO{From: int(m.From), To: int(m.To), Notation: m.String()}
}

func movesToDTO(ms []khs.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func recordToDTO(r khs.MoveRecord) MoveRecordDTO {
	dto := MoveRecordDTO{
		Side:      sideToInt(r.Side),
		Piece:     r.Kind.String(),
		From:      int(r.From),
		To:        int(r.To),
		Notation:  r.Notation,
		FENBefore: r.FENBefore,
		FENAfter:  r.FENAfter,
		Flanks:    r.FlanksAfter,
	}
	if r.Captured != khs.PieceNone {
		dto.Captured = r.Captured.String()
	}
	return dto
}

func status(s game.Snapshot) string {
	switch {
	case s.Over:
		return "over"
	case s.Viewing():
		return "viewing"
	case len(s.LegalMoves) == 0:
		return "no_moves"
	case s.InCheck != khs.NoSide:
		return "check"
	default:
		return "ongoing"
	}
}

func snapshotToDTO(s game.Snapshot) StateResponse {
	resp := StateResponse{
		GameID:     s.GameID,
		Version:    s.Version,
		Position:   s.FEN,
		ToMove:     sideToInt(s.Turn),
		Status:     status(s),
		Winner:     sideToInt(s.Winner),
		InCheck:    sideToInt(s.InCheck),
		Flanks:     s.Flanks,
		Selected:   squareToInt(s.Selected),
		Candidates: squaresToInts(s.Candidates),
		LegalMoves: movesToDTO(s.LegalMoves),
		History:    make([]MoveRecordDTO, len(s.History)),
		ViewIndex:  s.ViewIndex,
	}
	for i, r := range s.History {
		resp.History[i] = recordToDTO(r)
	}
	if n := len(resp.History); n > 0 {
		last := resp.History[n-1]
		resp.LastMove = &last
	}
	return resp
}
