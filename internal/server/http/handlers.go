package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"khs/internal/khs"
	"khs/internal/server/game"
)

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	mgr *game.Manager
	log *zap.Logger
}

func NewHandler(mgr *game.Manager, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{mgr: mgr, log: log}
}

func (h *Handler) Manager() *game.Manager {
	return h.mgr
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/ws" {
		h.handleWS(w, r)
		return
	}

	switch r.URL.Path {
	case "/api/new_game", "/api/state", "/api/select", "/api/legal_moves",
		"/api/play", "/api/history", "/api/reset":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
	default:
		http.NotFound(w, r)
		return
	}

	switch r.URL.Path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/state":
		h.handleState(w, r)
	case "/api/select":
		h.handleSelect(w, r)
	case "/api/legal_moves":
		h.handleLegalMoves(w, r)
	case "/api/play":
		h.handlePlay(w, r)
	case "/api/history":
		h.handleHistory(w, r)
	case "/api/reset":
		h.handleReset(w, r)
	}
}

// decode 空 body 当作空请求
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	gs, err := h.mgr.NewGame(req.FEN)
	if err != nil {
		h.writeError(w, err)
		return
	}
	snap, err := h.mgr.State(gs.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, snapshotToDTO(snap))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	snap, err := h.mgr.State(req.GameID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, snapshotToDTO(snap))
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	snap, moved, err := h.mgr.Select(req.GameID, intToSquare(req.Square))
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := snapshotToDTO(snap)
	resp.Moved = moved
	writeJSON(w, resp)
}

func (h *Handler) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	var req LegalMovesRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	targets, err := h.mgr.LegalMoves(req.GameID, intToSquare(req.Square))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, LegalMovesResponse{Square: req.Square, Targets: squaresToInts(targets)})
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	snap, _, err := h.mgr.Play(req.GameID, intToSquare(req.Move.From), intToSquare(req.Move.To))
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := snapshotToDTO(snap)
	resp.Moved = true
	writeJSON(w, resp)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	var req HistoryRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	snap, err := h.mgr.GoToHistory(req.GameID, req.Index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, snapshotToDTO(snap))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	snap, err := h.mgr.Reset(req.GameID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, snapshotToDTO(snap))
}

// errorStatus 把领域错误映射成 HTTP 状态码
func errorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrBadPosition),
		errors.Is(err, khs.ErrNoPiece),
		errors.Is(err, khs.ErrIllegalMove),
		errors.Is(err, khs.ErrHistoryIndex):
		return http.StatusBadRequest
	case errors.Is(err, khs.ErrGameOver),
		errors.Is(err, khs.ErrNotYourTurn),
		errors.Is(err, khs.ErrFlankDeactivated):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("writeJSON error", zap.Error(err))
	}
}
