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
	. "github.com/dkramer/corechess/internal/config"
	"github.com/dkramer/corechess/internal/position"
	. "github.com/dkramer/corechess/internal/types"
)

// rootSearch runs one iterative-deepening depth over the current root move
// ordering. depthS is in ply-scale units (iterationDepth * plyScale). It
// returns the score of the best root move found (pv[0][0]'s value).
//
// Root moves with index < maxPV get an aspiration window seeded from their
// previous iteration's score; the remaining moves are searched with a null
// window at the maxPV-th best score. Re-searches widen asymmetrically on
// fail-high/low following the teacher's own root loop (search.cpp ~146-222):
// the widening delta is aspirationWindow (or 1000 near a mate score),
// doubled for a fail-high of the first move and for every fail-low, and
// grows by 3/2 on every further fail.
func (s *Search) rootSearch(p *position.Position, depthS int) Value {
	firstIteration := depthS == plyScale

	maxPV := Settings.Search.MaxPV
	if maxPV < 1 {
		maxPV = 1
	}
	if maxPV > s.rootMoves.Len() {
		maxPV = s.rootMoves.Len()
	}

	bestNodeValue := ValueNA

	for mi := 0; mi < s.rootMoves.Len(); mi++ {
		if s.stopConditions() {
			break
		}

		m := s.rootMoves.At(mi).MoveOf()
		prevScore := s.rootMoves.At(mi).ValueOf()
		if !prevScore.IsValid() {
			prevScore = 0
		}

		aspirationDelta := aspirationWindow
		if absValue(prevScore) > ValueCheckMate/2 {
			aspirationDelta = 1000
		}

		var alpha, beta Value
		switch {
		case firstIteration:
			alpha = -ValueCheckMate
			beta = ValueCheckMate
		case mi < maxPV:
			alpha = maxValue(prevScore-aspirationDelta, -ValueCheckMate)
			beta = minValue(prevScore+aspirationDelta, ValueCheckMate)
		default:
			alpha = s.rootMoves.At(maxPV - 1).ValueOf()
			beta = alpha + 1
		}

		s.statistics.CurrentRootMoveIndex = mi
		s.statistics.CurrentRootMove = m

		givesCheck := p.GivesCheck(m)
		isCapture := p.IsCapturingMove(m)
		isPromotion := m.MoveType() == Promotion

		lmr := 0
		if depthS >= 3*plyScale &&
			!isCapture &&
			!isPromotion &&
			!givesCheck &&
			mi >= Settings.Search.RootLmrMoveCount+maxPV {
			lmr = plyScale
		}

		nodesBefore := s.nodesVisited
		score := s.searchRootMove(p, m, depthS, lmr, alpha, beta)
		if s.stopConditions() {
			break
		}

		betaRetryDelta := aspirationDelta
		if mi == 0 {
			betaRetryDelta = aspirationDelta * 2
		}
		alphaRetryDelta := aspirationDelta * 2

		for (score >= beta || (mi < maxPV && score <= alpha)) && !s.stopConditions() {
			s.statistics.AspirationResearches++
			failHigh := score >= beta
			if failHigh {
				if score > ValueCheckMate/2 {
					betaRetryDelta = ValueCheckMate
				}
				beta = minValue(score+betaRetryDelta, ValueCheckMate)
				betaRetryDelta = betaRetryDelta * 3 / 2
				s.sendAspirationResearchInfo("lowerbound")
			} else {
				if score < -ValueCheckMate/2 {
					alphaRetryDelta = ValueCheckMate
				}
				alpha = maxValue(score-alphaRetryDelta, -ValueCheckMate)
				alphaRetryDelta = alphaRetryDelta * 3 / 2
				s.sendAspirationResearchInfo("upperbound")
			}
			score = s.searchRootMove(p, m, depthS, 0, alpha, beta)
		}

		s.rootMoveNodes[m] += s.nodesVisited - nodesBefore
		s.rootMoves.Set(mi, m.SetValue(score))

		if score > bestNodeValue {
			bestNodeValue = score
			savePV(m, s.pv[1], s.pv[0])
			s.statistics.BestMoveChange++
		}
	}

	return bestNodeValue
}

// searchRootMove makes m, searches the resulting position with negaScout and
// unmakes it, applying the root-LMR re-search when the reduced search beats
// alpha.
func (s *Search) searchRootMove(p *position.Position, m Move, depthS int, lmr int, alpha Value, beta Value) Value {
	p.DoMove(m)
	s.nodesVisited++
	s.statistics.CurrentVariation.PushBack(m)

	var score Value
	if s.checkDrawRepAnd50(p, 2) {
		score = ValueDraw
	} else {
		score = -s.negaScout(p, depthS-lmr-plyScale, 1, -beta, -alpha, true, true, SqNone)
		if lmr > 0 && score > alpha && !s.stopConditions() {
			s.statistics.LmrResearches++
			score = -s.negaScout(p, depthS-plyScale, 1, -beta, -alpha, true, true, SqNone)
		}
	}

	s.statistics.CurrentVariation.PopBack()
	p.UndoMove()
	return score
}

// sortRootMovesByNodes reorders rootMoves by the cumulative node count spent
// resolving each move, most-expensive first, mirroring texel's
// MoveInfo::SortByNodes (search.cpp:287): a move that was hard to search is
// worth searching early in the next iteration, since it is the most likely
// to upset the current best line. Uses the same stable insertion sort as
// moveslice.MoveSlice.Sort, since the move list is mostly pre-sorted and
// small.
func (s *Search) sortRootMovesByNodes() {
	l := s.rootMoves.Len()
	for i := 1; i < l; i++ {
		tmp := s.rootMoves.At(i)
		tmpNodes := s.rootMoveNodes[tmp.MoveOf()]
		j := i
		for j > 0 && s.rootMoveNodes[s.rootMoves.At(j-1).MoveOf()] < tmpNodes {
			s.rootMoves.Set(j, s.rootMoves.At(j-1))
			j--
		}
		s.rootMoves.Set(j, tmp)
	}
}

func maxValue(a, b Value) Value {
	if a > b {
		return a
	}
	return b
}

func minValue(a, b Value) Value {
	if a < b {
		return a
	}
	return b
}
