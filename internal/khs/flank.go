package khs

import (
	"encoding/json"
	"math/bits"
)

// FlankKey 可被失效的四个翼：{side}_{left|right}
type FlankKey int8

const (
	NoFlankKey FlankKey = iota - 1
	ChoLeft
	ChoRight
	HanLeft
	HanRight

	numFlankKeys = 4
)

var flankKeyNames = [numFlankKeys]string{"cho_left", "cho_right", "han_left", "han_right"}

func (k FlankKey) String() string {
	if k < 0 || k >= numFlankKeys {
		return "none"
	}
	return flankKeyNames[k]
}

// FlankKeyOf 中军没有对应的 key
func FlankKeyOf(side Side, f Flank) FlankKey {
	var base FlankKey
	switch side {
	case Cho:
		base = ChoLeft
	case Han:
		base = HanLeft
	default:
		return NoFlankKey
	}
	switch f {
	case FlankLeft:
		return base
	case FlankRight:
		return base + 1
	default:
		return NoFlankKey
	}
}

// FlankState 四个翼的集合（位图），值拷贝即快照
type FlankState uint8

func (s FlankState) Has(k FlankKey) bool {
	if k < 0 || k >= numFlankKeys {
		return false
	}
	return s&(1<<uint(k)) != 0
}

func (s FlankState) With(k FlankKey) FlankState {
	if k < 0 || k >= numFlankKeys {
		return s
	}
	return s | 1<<uint(k)
}

func (s FlankState) Without(k FlankKey) FlankState {
	if k < 0 || k >= numFlankKeys {
		return s
	}
	return s &^ (1 << uint(k))
}

// Union 合并两个集合
func (s FlankState) Union(o FlankState) FlankState { return s | o }

// Minus 去掉 o 中的所有 key
func (s FlankState) Minus(o FlankState) FlankState { return s &^ o }

func (s FlankState) Len() int { return bits.OnesCount8(uint8(s)) }

func (s FlankState) Keys() []FlankKey {
	var out []FlankKey
	for k := FlankKey(0); k < numFlankKeys; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s FlankState) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, numFlankKeys)
	for k := FlankKey(0); k < numFlankKeys; k++ {
		m[k.String()] = s.Has(k)
	}
	return json.Marshal(m)
}

func (s *FlankState) UnmarshalJSON(data []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out FlankState
	for k := FlankKey(0); k < numFlankKeys; k++ {
		if m[k.String()] {
			out = out.With(k)
		}
	}
	*s = out
	return nil
}

// pieceLocked 选子门禁：翼被失效时，该翼非王棋子不能动
func pieceLocked(p Piece, flanks FlankState) bool {
	if p.Flank == FlankCenter || p.Kind == PieceKing {
		return false
	}
	return flanks.Has(FlankKeyOf(p.Side, p.Flank))
}
