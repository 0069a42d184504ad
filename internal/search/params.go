//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package search

import (
	"math"

	"github.com/dkramer/corechess/internal/types"
)

// This file contain data structures and functions to support the search with
// static or pre-computed parameters. Mostly for params too complex to be
// part of the search configuration

// lmp is a depth-indexed (nominal ply) move-count gate for late move
// pruning, tuned in the style of Crafty's own table.
var lmp [16]int

func init() {
	for i := 1; i < 16; i++ {
		// from Crafty
		lmp[i] = 6 + int(math.Pow(float64(i)+0.5, 1.3))
	}
}

// futility pruning - array with margins per depth left.
var fp = [7]types.Value{0, 100, 200, 300, 500, 900, 1200}

// Crafty values: {  0, 100, 150, 200,  250,  300,  400,  500, 600, 700, 800, 900, 1000, 1100, 1200, 1300 }

// reverse futility pruning - array with margins per depth left
var rfp = [4]types.Value{0, 200, 400, 800}

// plyScale mirrors types.PlyScale as a plain int for arithmetic against the
// int depths carried through the search (root.go, negascout.go, quiescence.go).
const plyScale = int(types.PlyScale)

// razoring margins (search.cpp:525, razorMargin1/2). texel tunes these via a
// parameters header that was not part of the retrieved source; the round
// numbers below follow the teacher's own fp/rfp margin style.
const (
	razorMargin1 types.Value = 300
	razorMargin2 types.Value = 500
)

// razorMarginFor returns razorMargin1 for depth<=plyScale, else razorMargin2
// (search.cpp:525).
func razorMarginFor(depth int) types.Value {
	if depth <= plyScale {
		return razorMargin1
	}
	return razorMargin2
}

// reverseFutilityMarginFor returns the RFP margin for depth, reusing the rfp
// table indexed by nominal ply (depth/plyScale), matching search.cpp:548-551's
// four-tier margin-by-depth structure.
func reverseFutilityMarginFor(depth int) types.Value {
	nominal := depth / plyScale
	if nominal >= len(rfp) {
		nominal = len(rfp) - 1
	}
	return rfp[nominal]
}

// futilityMarginFor returns the futility margin for depth, reusing the fp
// table indexed by nominal ply, matching search.cpp:646-649.
func futilityMarginFor(depth int) types.Value {
	nominal := depth / plyScale
	if nominal >= len(fp) {
		nominal = len(fp) - 1
	}
	return fp[nominal]
}

// lmpMoveCountLimitFor returns the LMP move-count gate for depth, or 256
// (effectively unlimited) once depth leaves the {1,2,3,4}*plyScale band.
func lmpMoveCountLimitFor(depth int) int {
	nominal := depth / plyScale
	if nominal < 1 || nominal > 4 {
		return 256
	}
	return lmp[nominal]
}

// LMR move-count gates (search.cpp:740,792,794). Exact tuned values live in
// texel's separate parameters header, not part of the retrieved source;
// these follow the same order of magnitude as the gates actually exercised
// in search.cpp's comments.
const (
	lmrMoveCountLimit1 = 4
	lmrMoveCountLimit2 = 9
)

// aspirationWindow is the half-width of the root's initial aspiration
// window (search.cpp:152).
const aspirationWindow types.Value = 25

// deltaPruningMargin is the optimism margin applied in quiescence delta
// pruning (search.cpp:992).
const deltaPruningMargin types.Value = 200

// quiesceMaxSortMoves bounds how many quiescence moves get incremental
// best-of selection before falling back to generation order (search.cpp:966).
const quiesceMaxSortMoves = 8

// minSMPDepth is the split-point helper-thread depth gate from search.cpp
// (search.cpp:628). Not wired to any pool since this repo is single-threaded;
// kept only as the constant internal/search/splitpoint.go's boundary names.
const minSMPDepth = 6
