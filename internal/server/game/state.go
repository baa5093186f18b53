package game

import (
	"sync"
	"time"

	"khs/internal/khs"
)

// GameState 一个对局会话。Game 只在持有 mu 时访问。
type GameState struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu   sync.Mutex
	Game *khs.Game

	// version 每次成功改动加一，同样受 mu 保护
	version uint64

	subMu  sync.Mutex
	nextID uint64
	subs   map[uint64]chan Snapshot
}

// Snapshot 某一时刻会话状态的只读拷贝，推送和 HTTP 返回都用它
type Snapshot struct {
	GameID     string
	Version    uint64 // 同一会话内单调递增
	FEN        string
	Turn       khs.Side
	Over       bool
	Winner     khs.Side
	InCheck    khs.Side
	Flanks     khs.FlankState
	Selected   khs.Square
	Candidates []khs.Square
	ViewIndex  int
	History    []khs.MoveRecord
	LegalMoves []khs.Move
	UpdatedAt  time.Time
}

// Viewing 是否停在历史局面上
func (s Snapshot) Viewing() bool { return s.ViewIndex != len(s.History) }

const subscriberBuffer = 16

func (gs *GameState) subscribe() (<-chan Snapshot, func()) {
	gs.subMu.Lock()
	defer gs.subMu.Unlock()
	if gs.subs == nil {
		gs.subs = make(map[uint64]chan Snapshot)
	}
	id := gs.nextID
	gs.nextID++
	ch := make(chan Snapshot, subscriberBuffer)
	gs.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			gs.subMu.Lock()
			defer gs.subMu.Unlock()
			if c, ok := gs.subs[id]; ok {
				delete(gs.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// publish 不阻塞：订阅者的缓冲满了就挤掉最旧的一条，保证最新状态一定送到。
// 调用方持有 gs.mu，推送顺序与改动顺序一致。返回挤掉的条数。
func (gs *GameState) publish(s Snapshot) int {
	gs.subMu.Lock()
	defer gs.subMu.Unlock()
	dropped := 0
	for _, ch := range gs.subs {
		select {
		case ch <- s:
			continue
		default:
		}
		select {
		case <-ch:
			dropped++
		default:
		}
		select {
		case ch <- s:
		default:
			dropped++
		}
	}
	return dropped
}

func (gs *GameState) closeSubscribers() {
	gs.subMu.Lock()
	defer gs.subMu.Unlock()
	for id, ch := range gs.subs {
		close(ch)
		delete(gs.subs, id)
	}
}

func (gs *GameState) subscriberCount() int {
	gs.subMu.Lock()
	defer gs.subMu.Unlock()
	return len(gs.subs)
}
