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

package search

import (
	"math"

	. "github.com/dkramer/corechess/internal/config"
	"github.com/dkramer/corechess/internal/moveslice"
	"github.com/dkramer/corechess/internal/position"
	. "github.com/dkramer/corechess/internal/types"
)

// weakPlaySkip demotes a move to "not seen" with a probability modelling a
// sub-master player missing it. strength is on a 0-1000 scale (1000 = full
// strength: the skip probability stays below 1% up to effective ply 6 and
// reaches 50% at effective ply 11).
func (s *Search) weakPlaySkip(p *position.Position, move Move, ply int, depth int) bool {
	strength := float64(Settings.Search.Strength) / 1000.0
	offs := (17 - 50*strength) / 3

	totalMaterial := float64(p.Material(White) + p.Material(Black))
	qV := float64(Queen.ValueOf())
	interp := interpolate(totalMaterial, 0, 30, 4*qV, 100)
	effPly := float64(ply) * interp / 100

	t := effPly + offs
	prob := 1 / (1 + math.Exp(t))

	isCapture := p.IsCapturingMove(move)
	lastMove := p.LastMove()
	isRecapture := lastMove != MoveNone && lastMove.To() == move.To() && p.LastCapturedPiece() != PieceNone
	if isRecapture || ply < 2 || isCapture {
		prob = 1 - (1-prob)*(1-prob)
	}

	rnd := weakPlayRandom(uint64(p.ZobristKey()), move.From(), move.To(), Settings.Search.RandomSeed)
	if rnd > prob {
		s.statistics.WeakPlaySkips++
		return true
	}
	return false
}

// weakPlayRootSubset implements the root move subsetting for weak play: when
// strength < 100 each move is kept with probability (strength/100)^2, with at
// least one move always surviving (chosen deterministically from the
// position hash so a given position always keeps the same fallback move).
func (s *Search) weakPlayRootSubset(moves *moveslice.MoveSlice, pos *position.Position) *moveslice.MoveSlice {
	if Settings.Search.Strength >= 100 || moves.Len() == 0 {
		return moves
	}
	keepProb := float64(Settings.Search.Strength) / 100.0
	keepProb *= keepProb

	kept := moveslice.NewMoveSlice(moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		rnd := weakPlayRandom(uint64(pos.ZobristKey()), m.From(), m.To(), Settings.Search.RandomSeed)
		if rnd < keepProb {
			kept.PushBack(m)
		}
	}
	if kept.Len() == 0 {
		fallback := int(uint64(pos.ZobristKey()) % uint64(moves.Len()))
		kept.PushBack(moves.At(fallback))
	}
	return kept
}

// interpolate linearly interpolates x from [x0,x1] to [y0,y1], clamped at
// both ends.
func interpolate(x, x0, y0, x1, y1 float64) float64 {
	switch {
	case x <= x0:
		return y0
	case x >= x1:
		return y1
	default:
		return y0 + (x-x0)*(y1-y0)/(x1-x0)
	}
}

// weakPlayRandom derives a uniform value in [0,1) from a position hash, a
// move's squares and the configured random seed. A splitmix64 finalizer
// keeps this deterministic and seed-reproducible without pulling in
// math/rand state shared with the rest of the search.
func weakPlayRandom(key uint64, from, to Square, seed int64) float64 {
	h := key ^ uint64(from)*0x9E3779B97F4A7C15 ^ uint64(to)*0xC2B2AE3D27D4EB4F ^ uint64(seed)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return float64(h>>11) / float64(uint64(1)<<53)
}
