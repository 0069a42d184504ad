/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package types

import "fmt"

// Value is a centipawn-equivalent score. It is signed and bounded by
// +/- ValueCheckMate. Mate scores encode the mating distance in plies:
// a mate in n plies is stored as +/-(ValueCheckMate - n).
type Value int16

// Score and search depth constants.
//
// ValueCheckMate is MATE0 - "mated at ply 0". A forced mate found n plies
// from the root is reported as ValueCheckMate-n (or the negation for the
// side being mated).
//
// ValueNA is the UNKNOWN_SCORE sentinel: "no static eval computed yet".
// It must never leak into a comparison against alpha/beta.
const (
	ValueZero      Value = 0
	ValueDraw      Value = 0
	ValueNA        Value = -32767
	ValueCheckMate Value = 32000
	ValueMax       Value = 32001
	ValueMin       Value = -32001

	// ValueCheckMateThreshold separates "real" evaluation scores from mate
	// scores. Any |score| > ValueCheckMateThreshold is a mate score and must
	// be adjusted for ply when stored in or read from the transposition table.
	ValueCheckMateThreshold Value = ValueCheckMate - 1000
)

// IsValid reports whether v is within the legal score range [-MATE0, MATE0].
func (v Value) IsValid() bool {
	return v >= -ValueCheckMate && v <= ValueCheckMate
}

// IsCheckMateValue reports whether v encodes a forced mate (for either side).
func (v Value) IsCheckMateValue() bool {
	return v > ValueCheckMateThreshold || v < -ValueCheckMateThreshold
}

// String returns a human-readable representation, rendering mate scores as
// "mate n" / "-mate n" instead of raw centipawns.
func (v Value) String() string {
	if v == ValueNA {
		return "N/A"
	}
	if v.IsCheckMateValue() {
		if v > 0 {
			return fmt.Sprintf("mate %d", (ValueCheckMate-v+1)/2)
		}
		return fmt.Sprintf("-mate %d", (ValueCheckMate+v+1)/2)
	}
	return fmt.Sprintf("%d", int(v))
}

// Depth is a search depth measured in ply-scale units. One nominal ply
// equals PlyScale so fractional extensions and reductions (check extension,
// LMR, IID) can be expressed as integer arithmetic.
type Depth int

// PlyScale is the number of Depth units per nominal ply.
const PlyScale Depth = 2

// MaxDepth is the hard search depth ceiling (MAX_SEARCH_DEPTH), in plies.
const MaxDepth = 128

// MaxPly mirrors MaxDepth for indexing per-ply arrays (killers, PV, stack).
const MaxPly = MaxDepth + 2

// MaxMoves is the capacity reserved for a single position's pseudo-legal
// move list. No legal chess position has been found needing more than a
// few hundred; this is the conventional engine headroom figure.
const MaxMoves = 512
