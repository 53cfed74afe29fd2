// Package bitfield provides a fixed-size set of input positions.
// Positions iterate in ascending order, which is the order constituents are reported in.
package bitfield

import (
	"math/bits"
	"strconv"
	"strings"
)

const wordSize = 64

type BitField struct {
	w      []uint64
	length int
}

// New creates a new BitField that can hold positions in [0, length).
func New(length int) BitField {
	if length < 0 {
		panic("negative bitfield length")
	}
	return BitField{make([]uint64, (length+wordSize-1)/wordSize), length}
}

// Len returns the number of positions as given to New.
func (b *BitField) Len() int { return b.length }

// Set position i. Returns false if it was already set. Panics if i >= b.Len().
func (b *BitField) Set(i int) bool {
	b.checkIndex(i)
	div, mod := divMod(i)
	if b.w[div]&(1<<mod) != 0 {
		return false
	}
	b.w[div] |= 1 << mod
	return true
}

// Clear position i. Returns false if it was not set. Panics if i >= b.Len().
func (b *BitField) Clear(i int) bool {
	b.checkIndex(i)
	div, mod := divMod(i)
	if b.w[div]&(1<<mod) == 0 {
		return false
	}
	b.w[div] &^= 1 << mod
	return true
}

// Test position i. Panics if i >= b.Len().
func (b *BitField) Test(i int) bool {
	b.checkIndex(i)
	div, mod := divMod(i)
	return b.w[div]&(1<<mod) != 0
}

// Count returns the number of set positions.
func (b *BitField) Count() int {
	var total int
	for _, v := range b.w {
		total += bits.OnesCount64(v)
	}
	return total
}

// Clone returns an independent copy of b.
func (b *BitField) Clone() BitField {
	w := make([]uint64, len(b.w))
	copy(w, b.w)
	return BitField{w, b.length}
}

// ForEach calls f for every set position in ascending order.
func (b *BitField) ForEach(f func(i int)) {
	for div, v := range b.w {
		for v != 0 {
			mod := bits.TrailingZeros64(v)
			f(div*wordSize + mod)
			v &= v - 1
		}
	}
}

// Positions returns set positions in ascending order.
func (b *BitField) Positions() []int {
	p := make([]int, 0, b.Count())
	b.ForEach(func(i int) { p = append(p, i) })
	return p
}

func (b *BitField) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	b.ForEach(func(i int) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(strconv.Itoa(i))
	})
	sb.WriteByte('}')
	return sb.String()
}

func (b *BitField) checkIndex(i int) {
	if i < 0 || i >= b.length {
		panic("index out of bound")
	}
}

func divMod(i int) (int, uint) { return i / wordSize, uint(i % wordSize) }
