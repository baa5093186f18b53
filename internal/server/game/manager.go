package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"khs/internal/khs"
)

// Manager 内存里的对局表。每局自己一把锁，不同对局互不影响。
type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState

	ttl   time.Duration
	log   *zap.Logger
	cache *legalMoveCache
	now   func() time.Time
}

// NewManager ttl <= 0 表示会话永不过期
func NewManager(log *zap.Logger, ttl time.Duration) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		games: make(map[string]*GameState),
		ttl:   ttl,
		log:   log,
		cache: newLegalMoveCache(legalMoveCacheCap),
		now:   time.Now,
	}
}

// NewGame fen 为空时用标准开局；否则从给定局面开局，局面有问题直接拒绝。
func (m *Manager) NewGame(fen string) (*GameState, error) {
	g := khs.NewGame()
	if fen != "" {
		var err error
		g, err = khs.NewGameFromFEN(fen, 0)
		if err != nil {
			return nil, errors.Wrap(ErrBadPosition, err.Error())
		}
	}

	now := m.now()
	gs := &GameState{
		ID:        uuid.NewString(),
		Game:      g,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.games[gs.ID] = gs
	n := len(m.games)
	m.mu.Unlock()

	m.log.Info("game created", zap.String("game_id", gs.ID), zap.Int("sessions", n))
	return gs, nil
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, errors.Wrapf(ErrGameNotFound, "%q", id)
	}
	return g, nil
}

// Delete 移除会话并关闭它的订阅
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	gs, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if ok {
		gs.closeSubscribers()
	}
	return ok
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

func (m *Manager) CacheStats() CacheStats { return m.cache.stats() }

// snapshot 调用方持有 gs.mu
func (m *Manager) snapshot(gs *GameState) Snapshot {
	g := gs.Game
	return Snapshot{
		GameID:     gs.ID,
		Version:    gs.version,
		FEN:        g.Board.Encode(),
		Turn:       g.Turn,
		Over:       g.Over,
		Winner:     g.Winner,
		InCheck:    g.InCheck,
		Flanks:     g.Flanks,
		Selected:   g.Selected,
		Candidates: append([]khs.Square(nil), g.Candidates...),
		ViewIndex:  g.ViewIndex,
		History:    append([]khs.MoveRecord(nil), g.History...),
		LegalMoves: m.cache.legalMoves(g),
		UpdatedAt:  gs.UpdatedAt,
	}
}

// State 当前状态，不改动对局
func (m *Manager) State(id string) (Snapshot, error) {
	gs, err := m.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return m.snapshot(gs), nil
}

// update 在会话锁内执行 fn；成功后刷新时间、做快照并推给订阅者。
// 推送也在锁内，订阅者收到的顺序就是改动的顺序。
func (m *Manager) update(id, op string, fn func(g *khs.Game) error) (Snapshot, error) {
	gs, err := m.Get(id)
	if err != nil {
		return Snapshot{}, err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()
	if err := fn(gs.Game); err != nil {
		m.log.Debug("rejected", zap.String("game_id", id), zap.String("op", op), zap.Error(err))
		return Snapshot{}, err
	}
	gs.UpdatedAt = m.now()
	gs.version++
	snap := m.snapshot(gs)

	if dropped := gs.publish(snap); dropped > 0 {
		m.log.Warn("slow subscriber, older snapshots dropped", zap.String("game_id", id), zap.Int("dropped", dropped))
	}
	return snap, nil
}

// Select 一次点击（选子、取消或走子），返回是否真的走了一步
func (m *Manager) Select(id string, sq khs.Square) (Snapshot, bool, error) {
	var moved bool
	snap, err := m.update(id, "select", func(g *khs.Game) error {
		moved = g.SelectOrMove(sq)
		if moved {
			if rec, ok := g.LastMove(); ok {
				m.logMove(id, rec, g)
			}
		}
		return nil
	})
	return snap, moved, err
}

// Play 校验并走一步
func (m *Manager) Play(id string, from, to khs.Square) (Snapshot, khs.MoveRecord, error) {
	var rec khs.MoveRecord
	snap, err := m.update(id, "play", func(g *khs.Game) error {
		var err error
		rec, err = g.Play(from, to)
		if err != nil {
			return err
		}
		m.logMove(id, rec, g)
		return nil
	})
	return snap, rec, err
}

func (m *Manager) logMove(id string, rec khs.MoveRecord, g *khs.Game) {
	fields := []zap.Field{
		zap.String("game_id", id),
		zap.String("move", rec.Notation),
		zap.Stringer("side", rec.Side),
		zap.Stringer("piece", rec.Kind),
		zap.Int("ply", len(g.History)),
	}
	if rec.Captured != khs.PieceNone {
		fields = append(fields, zap.Stringer("captured", rec.Captured))
	}
	if g.Over {
		fields = append(fields, zap.Stringer("winner", g.Winner))
	}
	m.log.Info("move", fields...)
}

// LegalMoves 某格棋子的合法落点，不改动对局
func (m *Manager) LegalMoves(id string, sq khs.Square) ([]khs.Square, error) {
	gs, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Game.LegalMoves(sq), nil
}

func (m *Manager) GoToHistory(id string, index int) (Snapshot, error) {
	return m.update(id, "history", func(g *khs.Game) error {
		return g.GoToHistory(index)
	})
}

func (m *Manager) Reset(id string) (Snapshot, error) {
	return m.update(id, "reset", func(g *khs.Game) error {
		g.Reset()
		m.log.Info("game reset", zap.String("game_id", id))
		return nil
	})
}

// Subscribe 订阅某局之后的每次状态变化。cancel 可以重复调用。
func (m *Manager) Subscribe(id string) (<-chan Snapshot, func(), error) {
	gs, err := m.Get(id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := gs.subscribe()
	return ch, cancel, nil
}

// Run 定期清理过期会话，直到 ctx 结束
func (m *Manager) Run(ctx context.Context) error {
	if m.ttl <= 0 {
		<-ctx.Done()
		return nil
	}
	interval := m.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.sweep(); n > 0 {
				m.log.Info("expired sessions removed", zap.Int("removed", n), zap.Int("sessions", m.Len()))
			}
		}
	}
}

// sweep 删掉超过 ttl 没动过、也没人订阅的会话
func (m *Manager) sweep() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.RLock()
	var stale []string
	for id, gs := range m.games {
		gs.mu.Lock()
		idle := gs.UpdatedAt.Before(cutoff)
		gs.mu.Unlock()
		if idle && gs.subscriberCount() == 0 {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.Delete(id)
	}
	return len(stale)
}
