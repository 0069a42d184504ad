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
	"github.com/dkramer/corechess/internal/movegen"
	"github.com/dkramer/corechess/internal/position"
	"github.com/dkramer/corechess/internal/transpositiontable"
	. "github.com/dkramer/corechess/internal/types"
)

// quiesce counters the horizon effect of a depth-bounded search by continuing
// to search captures (and, close to the horizon, checks) until the position
// is quiet. depth starts at 0 at the first quiescence frame and decreases on
// every recursive call:
//   depth >= 0   quiet check-giving moves are still considered
//   depth == -1  only captures are considered
//   depth <= -2  give-check is no longer even computed, for speed
func (s *Search) quiesce(p *position.Position, ply int, depth int, alpha Value, beta Value, inCheck bool) Value {
	if s.statistics.CurrentExtraSearchDepth < ply {
		s.statistics.CurrentExtraSearchDepth = ply
	}

	if !Settings.Search.UseQuiescence || ply >= MaxDepth {
		return s.evaluate(p, ply)
	}

	// Mate distance pruning
	if alpha < -ValueCheckMate+Value(ply) {
		alpha = -ValueCheckMate + Value(ply)
	}
	if beta > ValueCheckMate-Value(ply) {
		beta = ValueCheckMate - Value(ply)
	}
	if alpha >= beta {
		s.statistics.Mdp++
		return alpha
	}

	// Stand pat
	var staticEval Value
	var bestScore Value
	if inCheck {
		bestScore = -ValueCheckMate + Value(ply+1)
	} else {
		staticEval = s.evaluate(p, ply)
		bestScore = staticEval
		if Settings.Search.UseQSStandpat {
			if bestScore >= beta {
				s.statistics.StandpatCuts++
				return bestScore
			}
			if bestScore > alpha {
				alpha = bestScore
			}
		}
	}

	// TT lookup - the stored move seeds ordering; with UseTTValue a stored
	// score that is EXACT or a bound outside the window returns at once.
	ttMove := MoveNone
	if Settings.Search.UseQSTT {
		var ttEntry *transpositiontable.TtEntry
		ttEntry = s.tt.Probe(p.ZobristKey())
		if ttEntry != nil {
			s.statistics.TTHit++
			ttMove = ttEntry.Move.MoveOf()
			ttValue := valueFromTT(ttEntry.Move.ValueOf(), ply)
			cut := false
			switch {
			case !ttValue.IsValid():
				cut = false
			case ttEntry.Type == EXACT:
				cut = true
			case ttEntry.Type == ALPHA && ttValue <= alpha:
				cut = true
			case ttEntry.Type == BETA && ttValue >= beta:
				cut = true
			}
			if cut && Settings.Search.UseTTValue {
				s.statistics.TTCuts++
				return ttValue
			}
			s.statistics.TTNoCuts++
		} else {
			s.statistics.TTMiss++
		}
	}

	pureEndgame := p.MaterialNonPawn(White) == 0 && p.MaterialNonPawn(Black) == 0

	// movegen has no captures-and-checks mode of its own, so depth > -1
	// (the "still consider quiet checks" band) generates everything and
	// relies on the isCapture/givesCheck filter below to drop quiet
	// non-check moves; only once depth <= -1 do we narrow generation to
	// GenCap itself.
	var mode movegen.GenMode
	if inCheck || depth > -1 {
		mode = movegen.GenAll
	} else {
		mode = movegen.GenCap
	}
	moves := s.mg[ply].GeneratePseudoLegalMoves(p, mode)

	o := s.orderers[ply]
	hashMoveSelected := o.selectHashMove(moves, ttMove)
	startIdx := 0
	if hashMoveSelected {
		startIdx = 1
	}
	o.scoreMoveList(p, moves, startIdx, ply, s.killers, s.history)

	s.pv[ply].Clear()
	bestMove := MoveNone
	ttType := ALPHA
	movesSearched := 0

	for i := 0; i < moves.Len(); i++ {
		var move Move
		if i < quiesceMaxSortMoves {
			move = o.selectBest(moves, i)
		} else {
			move = moves.At(i)
		}

		isCapture := p.IsCapturingMove(move) || move.MoveType() == EnPassant

		var givesCheck bool
		if depth > -2 {
			givesCheck = p.GivesCheck(move)
		}

		if !inCheck {
			if !isCapture {
				if !(depth > -1 && givesCheck && signSEE(p, move) >= 0) {
					continue
				}
			} else {
				if negSEE(p, move) {
					continue
				}
				capturedValue := capturedPieceValue(p, move)
				promotionGain := Value(0)
				if move.MoveType() == Promotion {
					promotionGain = move.PromotionType().ValueOf() - Pawn.ValueOf()
				}
				optimistic := staticEval + capturedValue + promotionGain + deltaPruningMargin
				if optimistic < alpha && !pureEndgame && !givesCheck {
					if optimistic > bestScore {
						bestScore = optimistic
					}
					s.statistics.QFpPrunings++
					continue
				}
			}
		}

		p.DoMove(move)
		if !p.WasLegalMove() {
			p.UndoMove()
			continue
		}

		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(move)
		s.sendSearchUpdateToUci()

		var value Value
		childInCheck := givesCheck && depth > -2
		if inCheck && s.checkDrawRepAnd50(p, 2) {
			value = ValueDraw
		} else {
			value = -s.quiesce(p, ply+1, depth-1, -beta, -alpha, childInCheck)
		}

		movesSearched++
		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()

		if s.stopConditions() {
			return ValueNA
		}

		if value > bestScore {
			bestScore = value
			bestMove = move
			if value > alpha {
				savePV(move, s.pv[ply+1], s.pv[ply])
				if value >= beta {
					s.statistics.BetaCuts++
					if movesSearched == 1 {
						s.statistics.BetaCuts1st++
					}
					if !isCapture {
						s.killers.Store(ply, move)
					}
					if Settings.Search.UseHistoryCounter {
						us := p.NextPlayer()
						s.history.HistoryCount[us][move.From()][move.To()] += 1 << 1
					}
					ttType = BETA
					if Settings.Search.UseQSTT {
						s.storeTT(p, 0, ply, bestMove, bestScore, ttType)
					}
					return bestScore
				}
				alpha = value
				ttType = EXACT
			}
		}
	}

	if movesSearched == 0 && inCheck && !s.stopConditions() {
		s.statistics.Checkmates++
		bestScore = -ValueCheckMate + Value(ply)
		ttType = EXACT
	}

	if Settings.Search.UseQSTT {
		s.storeTT(p, 0, ply, bestMove, bestScore, ttType)
	}

	return bestScore
}

func capturedPieceValue(p *position.Position, m Move) Value {
	if m.MoveType() == EnPassant {
		return Pawn.ValueOf()
	}
	return p.GetPiece(m.To()).ValueOf()
}
