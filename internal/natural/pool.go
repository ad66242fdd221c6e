// This file provides pooled scratch buffers for the recursive multiply and
// divide algorithms to reduce GC pressure.

package natural

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Word Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// scratchPools pools word slices by size class. Size classes are powers of 4
// from 64 to 1M words; larger requests are allocated directly.
var scratchPools = [...]sync.Pool{
	{New: func() any { return make([]uint32, 64) }},
	{New: func() any { return make([]uint32, 256) }},
	{New: func() any { return make([]uint32, 1024) }},
	{New: func() any { return make([]uint32, 4096) }},
	{New: func() any { return make([]uint32, 16384) }},
	{New: func() any { return make([]uint32, 65536) }},
	{New: func() any { return make([]uint32, 262144) }},
	{New: func() any { return make([]uint32, 1048576) }},
}

// scratchSizes lists the capacity of each size class.
var scratchSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

// scratchPoolIndex returns the pool index for a request of size words, or
// -1 when the request is too large for pooling.
//
// Size class i holds 4^(i+3) words, so bits.Len(size-1) maps directly to the
// index without a search.
func scratchPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > scratchSizes[len(scratchSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireScratch returns a zeroed word slice of exactly size words. Release
// it with releaseScratch once no Natural can observe it.
//
//	buf := acquireScratch(n)
//	defer releaseScratch(buf)
func acquireScratch(size int) nat {
	idx := scratchPoolIndex(size)
	if idx < 0 {
		return make(nat, size)
	}
	s := scratchPools[idx].Get().([]uint32)
	clear(s)
	return s[:size]
}

// releaseScratch returns a slice obtained from acquireScratch to its pool.
// Slices whose capacity does not match a size class are left to the GC.
func releaseScratch(s nat) {
	if s == nil {
		return
	}
	c := cap(s)
	idx := scratchPoolIndex(c)
	if idx >= 0 && scratchSizes[idx] == c {
		scratchPools[idx].Put([]uint32(s[:c]))
	}
}
