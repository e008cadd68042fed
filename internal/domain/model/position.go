// Package model contains domain models passed between layers.
package model

import "strings"

// Position identifies a fantasy roster position.
type Position string

// The fixed position set. Every candidate entering the engine carries one of
// these; anything else is rejected at the boundary.
const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DST Position = "DST"
)

// Positions lists all positions in canonical order. Iteration that affects
// output ordering must use this slice, never a map.
var Positions = []Position{QB, RB, WR, TE, K, DST}

// FlexPositions lists the positions eligible for a FLEX slot, in the order
// the FLEX allocator scans them.
var FlexPositions = []Position{RB, WR, TE}

// ParsePosition normalizes a raw feed position string. Returns false when the
// input maps to nothing in the fixed set.
func ParsePosition(s string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QB":
		return QB, true
	case "RB":
		return RB, true
	case "WR":
		return WR, true
	case "TE":
		return TE, true
	case "K", "PK":
		return K, true
	case "DST", "DEF", "D/ST", "D":
		return DST, true
	}
	return "", false
}

// Valid reports whether p is one of the fixed positions.
func (p Position) Valid() bool {
	switch p {
	case QB, RB, WR, TE, K, DST:
		return true
	}
	return false
}

// Flex reports whether p can fill a FLEX slot.
func (p Position) Flex() bool {
	return p == RB || p == WR || p == TE
}

// PositionCounts is a fixed-size, position-indexed record. It replaces the
// loose map-of-maps shape that roster and needs data arrive in.
type PositionCounts struct {
	QB  int `json:"qb"`
	RB  int `json:"rb"`
	WR  int `json:"wr"`
	TE  int `json:"te"`
	K   int `json:"k"`
	DST int `json:"dst"`
}

// Get returns the count for pos.
func (c PositionCounts) Get(pos Position) int {
	switch pos {
	case QB:
		return c.QB
	case RB:
		return c.RB
	case WR:
		return c.WR
	case TE:
		return c.TE
	case K:
		return c.K
	case DST:
		return c.DST
	}
	return 0
}

// Add increments the count for pos by n.
func (c *PositionCounts) Add(pos Position, n int) {
	switch pos {
	case QB:
		c.QB += n
	case RB:
		c.RB += n
	case WR:
		c.WR += n
	case TE:
		c.TE += n
	case K:
		c.K += n
	case DST:
		c.DST += n
	}
}

// Total sums counts across all positions.
func (c PositionCounts) Total() int {
	return c.QB + c.RB + c.WR + c.TE + c.K + c.DST
}
