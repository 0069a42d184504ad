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
	"github.com/dkramer/corechess/internal/position"
	. "github.com/dkramer/corechess/internal/types"
)

// splitCandidate describes one move of negaScout's move loop in enough
// detail for a helper thread to resume the search on a copy of the
// position, mirroring texel's SplitPointMove (search.cpp:815): the move
// itself, its already-computed reduction/extension, the depth to search
// the child at, and the recapture square to seed into it.
type splitCandidate struct {
	move            Move
	newDepth        int
	recaptureSquare Square
	givesCheck      bool
}

// splitPointPool is the boundary a thread-pool would implement to pull
// split candidates off the main search thread and report their results
// back. No implementation is wired to it: this repo's Search runs
// single-threaded, which spec.md ยง5 states is a fully conformant mode.
// The interface exists so negaScout's move loop can one day offer a
// helper thread a candidate without changing its own signature.
type splitPointPool interface {
	// offer proposes splitting the remainder of a move loop at ply to
	// helper threads. Implementations return ok=false to decline, in
	// which case the caller continues the move loop itself.
	offer(p *position.Position, ply int, depth int, alpha Value, beta Value, candidates []splitCandidate) (value Value, ok bool)
}

// shouldOfferSplit reports whether depth is deep enough to be worth
// offering to a split-point pool, following texel's MIN_SMP_DEPTH gate
// (search.cpp:628: depth-R >= MIN_SMP_DEPTH*plyScale).
func shouldOfferSplit(depth int) bool {
	return depth >= minSMPDepth*plyScale
}
