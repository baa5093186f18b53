package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"khs/internal/server/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 本地对局，不限来源
	},
}

const (
	wsSendBuffer   = 64
	wsWriteTimeout = 10 * time.Second
	wsMaxMessage   = 4096
)

// WSMessage 客户端发来的消息：play / select / history / reset / state / ping
type WSMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// WSResponse 发给客户端的消息。type 为 state 的是推送，result / error / pong 是对某条请求的回复。
type WSResponse struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type wsPlayPayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type wsSelectPayload struct {
	Square int `json:"square"`
}

type wsHistoryPayload struct {
	Index int `json:"index"`
}

// wsClient 一条连接。只有 writePump 写 conn。
type wsClient struct {
	conn   *websocket.Conn
	h      *Handler
	gameID string
	log    *zap.Logger

	send    chan WSResponse
	done    chan struct{} // readPump 退出时关闭
	stopped chan struct{} // writePump 退出时关闭
}

// handleWS /api/ws?game_id=...：连上后先收到一次当前状态，之后这一局每次变化都会推送
func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("game_id")
	if id == "" {
		http.Error(w, "missing game_id", http.StatusBadRequest)
		return
	}
	updates, cancel, err := h.mgr.Subscribe(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer cancel()
	snap, err := h.mgr.State(id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("game_id", id), zap.Error(err))
		return
	}
	conn.SetReadLimit(wsMaxMessage)

	c := &wsClient{
		conn:    conn,
		h:       h,
		gameID:  id,
		log:     h.log.With(zap.String("game_id", id), zap.String("peer", r.RemoteAddr)),
		send:    make(chan WSResponse, wsSendBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	c.log.Info("websocket connected")
	c.reply(WSResponse{Type: "state", Payload: snapshotToDTO(snap)})

	go c.writePump(updates, snap.Version)
	c.readPump()
	<-c.stopped
	c.log.Info("websocket closed")
}

func (c *wsClient) write(msg WSResponse) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(msg)
}

// writePump seen 是已经发给客户端的最新版本，更旧的推送直接跳过
func (c *wsClient) writePump(updates <-chan game.Snapshot, seen uint64) {
	defer func() {
		close(c.stopped)
		c.conn.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			if err := c.write(msg); err != nil {
				return
			}
		case snap, ok := <-updates:
			if !ok {
				// 会话被删除
				_ = c.write(WSResponse{Type: "error", Error: game.ErrGameNotFound.Error()})
				return
			}
			if snap.Version <= seen {
				continue
			}
			seen = snap.Version
			if err := c.write(WSResponse{Type: "state", Payload: snapshotToDTO(snap)}); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *wsClient) readPump() {
	defer close(c.done)
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("websocket read failed", zap.Error(err))
			}
			return
		}
		c.handleMessage(msg)
	}
}

// reply 写端已经退出时直接丢弃
func (c *wsClient) reply(resp WSResponse) {
	select {
	case c.send <- resp:
	case <-c.stopped:
	}
}

func (c *wsClient) fail(msg WSMessage, err string) {
	c.reply(WSResponse{Type: "error", ID: msg.ID, Error: err})
}

func (c *wsClient) result(msg WSMessage, snap game.Snapshot, moved bool) {
	resp := snapshotToDTO(snap)
	resp.Moved = moved
	c.reply(WSResponse{Type: "result", ID: msg.ID, Payload: resp})
}

func (c *wsClient) handleMessage(msg WSMessage) {
	mgr := c.h.mgr
	switch msg.Type {
	case "play":
		var p wsPlayPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.fail(msg, "invalid payload")
			return
		}
		snap, _, err := mgr.Play(c.gameID, intToSquare(p.From), intToSquare(p.To))
		if err != nil {
			c.fail(msg, err.Error())
			return
		}
		c.result(msg, snap, true)

	case "select":
		var p wsSelectPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.fail(msg, "invalid payload")
			return
		}
		snap, moved, err := mgr.Select(c.gameID, intToSquare(p.Square))
		if err != nil {
			c.fail(msg, err.Error())
			return
		}
		c.result(msg, snap, moved)

	case "history":
		var p wsHistoryPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.fail(msg, "invalid payload")
			return
		}
		snap, err := mgr.GoToHistory(c.gameID, p.Index)
		if err != nil {
			c.fail(msg, err.Error())
			return
		}
		c.result(msg, snap, false)

	case "reset":
		snap, err := mgr.Reset(c.gameID)
		if err != nil {
			c.fail(msg, err.Error())
			return
		}
		c.result(msg, snap, false)

	case "state":
		snap, err := mgr.State(c.gameID)
		if err != nil {
			c.fail(msg, err.Error())
			return
		}
		c.result(msg, snap, false)

	case "ping":
		c.reply(WSResponse{Type: "pong", ID: msg.ID})

	default:
		c.fail(msg, "unknown message type")
	}
}
