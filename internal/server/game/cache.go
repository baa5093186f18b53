package game

import (
	"sync"
	"sync/atomic"

	"khs/internal/khs"
)

// 每条是一方全部走法（约百来步），上限按手机上的内存来定
const legalMoveCacheCap = 4096

// legalMoveCache 按局面 key（棋盘哈希 + 轮次 + 失效翼）缓存整方的合法走法。
// 存进去的切片之后只读。
type legalMoveCache struct {
	mu  sync.RWMutex
	m   map[uint64][]khs.Move
	cap int

	hits, misses atomic.Int64
}

func newLegalMoveCache(capacity int) *legalMoveCache {
	return &legalMoveCache{m: make(map[uint64][]khs.Move), cap: capacity}
}

func (c *legalMoveCache) get(key uint64) ([]khs.Move, bool) {
	c.mu.RLock()
	v, ok := c.m[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

func (c *legalMoveCache) store(key uint64, moves []khs.Move) {
	c.mu.Lock()
	if _, ok := c.m[key]; !ok && len(c.m) >= c.cap {
		// 满了整表清空
		c.m = make(map[uint64][]khs.Move)
	}
	c.m[key] = moves
	c.mu.Unlock()
}

// legalMoves 查缓存，没有就算一遍存起来
func (c *legalMoveCache) legalMoves(g *khs.Game) []khs.Move {
	if g.Over {
		return nil
	}
	key := g.Board.PositionKey(g.Turn, g.Flanks)
	if v, ok := c.get(key); ok {
		return v
	}
	moves := g.Board.LegalMovesForSide(g.Turn, g.Flanks)
	c.store(key, moves)
	return moves
}

// CacheStats 缓存命中统计
type CacheStats struct {
	Hits, Misses int64
	Entries      int
}

func (c *legalMoveCache) stats() CacheStats {
	c.mu.RLock()
	n := len(c.m)
	c.mu.RUnlock()
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Entries: n}
}
