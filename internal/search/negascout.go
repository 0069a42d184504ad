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

// negaScout is the main recursive search below the root. depth is carried in
// plyScale units so extensions and reductions smaller than one full ply are
// plain integer arithmetic. recaptureSquare names the destination of the
// move that reached this node when it was a capture, feeding the recapture
// extension heuristic in the child node; SqNone means "not a recapture".
func (s *Search) negaScout(p *position.Position, depth int, ply int, alpha Value, beta Value, isPV bool, doNull bool, recaptureSquare Square) Value {
	// 1. Mate distance pruning
	if beta > ValueCheckMate-Value(ply)-1 {
		beta = ValueCheckMate - Value(ply) - 1
	}
	if alpha < -ValueCheckMate+Value(ply) {
		alpha = -ValueCheckMate + Value(ply)
	}
	if alpha >= beta {
		s.statistics.Mdp++
		return alpha
	}

	// 2. Cancellation check
	if s.stopConditions() {
		return ValueNA
	}
	if ply >= MaxDepth {
		return s.evaluate(p, ply)
	}

	us := p.NextPlayer()
	hasCheck := p.HasCheck()
	posExtend := 0
	if hasCheck {
		posExtend = plyScale
	}

	// 4. Draw detection
	if p.HalfMoveClock() >= 100 {
		if hasCheck && !s.mg[ply].HasLegalMove(p) {
			return -ValueCheckMate + Value(ply)
		}
		return ValueDraw
	}
	if p.CheckRepetitions(2) {
		return ValueDraw
	}

	// 7. Drop to quiescence
	if depth+posExtend <= 0 {
		qValue := s.quiesce(p, ply, 0, alpha, beta, hasCheck)
		ttType := ALPHA
		switch {
		case qValue <= alpha:
			ttType = ALPHA
		case qValue >= beta:
			ttType = BETA
		default:
			ttType = EXACT
		}
		if Settings.Search.UseTT {
			s.storeTT(p, 0, ply, MoveNone, qValue, ttType)
		}
		return qValue
	}

	bestNodeValue := ValueNA
	bestNodeMove := MoveNone
	ttMove := MoveNone
	ttType := ALPHA

	// 5. TT probe
	var ttEntry *transpositiontable.TtEntry
	if Settings.Search.UseTT {
		ttEntry = s.tt.Probe(p.ZobristKey())
		if ttEntry != nil {
			s.statistics.TTHit++
			ttMove = ttEntry.Move.MoveOf()
			if int(ttEntry.Depth) >= depth {
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
					if ttEntry.Type == BETA && ttMove != MoveNone && !p.IsCapturingMove(ttMove) {
						s.killers.Store(ply, ttMove)
					}
					s.getPVLine(p, s.pv[ply], depth)
					s.statistics.TTCuts++
					return ttValue
				}
				s.statistics.TTNoCuts++
			}
		} else {
			s.statistics.TTMiss++
		}
	}

	// 8. Razoring
	if Settings.Search.UseRazoring &&
		!isPV &&
		depth < 4*plyScale &&
		!hasCheck {
		margin := razorMarginFor(depth)
		eval := s.evaluate(p, ply)
		if eval+margin < beta {
			rAlpha := alpha - margin
			rBeta := beta - margin
			qValue := s.quiesce(p, ply, 0, rAlpha, rBeta, hasCheck)
			if qValue <= rAlpha {
				s.statistics.RfpPrunings++
				if Settings.Search.UseTT {
					s.storeTT(p, depth, ply, MoveNone, qValue+margin, ALPHA)
				}
				return qValue + margin
			}
		}
	}

	// 9. Reverse futility pruning
	if Settings.Search.UseRFP &&
		!hasCheck &&
		depth < 5*plyScale &&
		posExtend == 0 &&
		!isPV &&
		p.MaterialNonPawn(us) > 0 &&
		p.PiecesBb(us, Pawn) != 0 {
		margin := reverseFutilityMarginFor(depth)
		eval := s.evaluate(p, ply)
		if eval-margin >= beta {
			s.statistics.RfpPrunings++
			if Settings.Search.UseTT {
				s.storeTT(p, depth, ply, MoveNone, eval-margin, BETA)
			}
			return eval - margin
		}
	}

	matethreat := false

	// 10. Null move pruning
	if Settings.Search.UseNullMove &&
		doNull &&
		!isPV &&
		depth >= 3*plyScale &&
		!hasCheck &&
		absValue(beta) <= ValueCheckMate/2 &&
		p.MaterialNonPawn(us) > 0 &&
		p.PiecesBb(us, Pawn) != 0 &&
		s.evaluate(p, ply) >= beta {

		r := 3 * plyScale
		if depth > 6*plyScale {
			r = 4 * plyScale
		}
		newDepth := depth - r
		if newDepth < 0 {
			newDepth = 0
		}

		p.DoNullMove()
		s.nodesVisited++
		nValue := -s.negaScout(p, newDepth, ply+1, -beta, -beta+1, false, false, SqNone)
		p.UndoNullMove()

		if s.stopConditions() {
			return ValueNA
		}

		if nValue > ValueCheckMateThreshold {
			s.statistics.NMPMateBeta++
			nValue = ValueCheckMateThreshold
		} else if nValue < -ValueCheckMateThreshold {
			s.statistics.NMPMateAlpha++
			matethreat = true
		}

		if nValue >= beta {
			verified := true
			if Settings.Search.UseNullVerification && depth >= Settings.Search.NmpVerificationDepth {
				s.statistics.NullMoveVerifications++
				verifyValue := s.negaScout(p, newDepth, ply, alpha, beta, false, false, SqNone)
				verified = verifyValue >= beta
			}
			if verified {
				s.statistics.NullMoveCuts++
				if Settings.Search.UseTT && !(Settings.Search.UseNullVerification && depth >= Settings.Search.NmpVerificationDepth) {
					s.storeTT(p, depth, ply, ttMove, nValue, BETA)
				}
				return nValue
			}
		}
	}

	// 11. Internal iterative deepening
	if Settings.Search.UseIID &&
		depth > 4*plyScale &&
		ttMove == MoveNone &&
		(isPV || depth > 8*plyScale) {
		newDepth := depth - 2*plyScale
		if !isPV {
			newDepth = depth * 3 / 8
		}
		if newDepth < 0 {
			newDepth = 0
		}
		s.negaScout(p, newDepth, ply, alpha, beta, isPV, true, SqNone)
		s.statistics.IIDsearches++
		if s.stopConditions() {
			return ValueNA
		}
		if s.pv[ply].Len() > 0 {
			s.statistics.IIDmoves++
			ttMove = s.pv[ply].At(0).MoveOf()
		}
	}

	// 12. Move generation. The move generator has no separate
	// check-evasion mode; illegal pseudo-legal moves (including moves that
	// leave the king in check) are filtered after DoMove via WasLegalMove.
	moves := s.mg[ply].GeneratePseudoLegalMoves(p, movegen.GenAll)

	// 13. Ordering bootstrap
	o := s.orderers[ply]
	hashMoveSelected := o.selectHashMove(moves, ttMove)
	if !hashMoveSelected {
		o.scoreMoveList(p, moves, 0, ply, s.killers, s.history)
	}
	orderingScored := !hashMoveSelected

	// 14. Late-move pruning gate
	lmpActive := Settings.Search.UseLmp && p.MaterialNonPawn(us) > 0
	moveCountLimit := lmpMoveCountLimitFor(depth)

	// 15. Futility gate
	futilityActive := false
	var futilityScore Value
	if Settings.Search.UseFP &&
		!hasCheck &&
		depth < 5*plyScale &&
		posExtend == 0 &&
		!isPV {
		eval := s.evaluate(p, ply)
		futilityScore = eval + futilityMarginFor(depth)
		futilityActive = futilityScore <= alpha
	}

	// 16. Move loop
	var value Value
	movesSearched := 0
	lmrCount := 0
	b := beta

	for i := 0; i < moves.Len(); i++ {
		if i == 1 && !orderingScored {
			o.scoreMoveList(p, moves, 1, ply, s.killers, s.history)
			orderingScored = true
		}

		var move Move
		if hashMoveSelected && i == 0 {
			move = moves.At(0)
		} else {
			move = o.selectBest(moves, i)
		}

		orderScore := o.scores[i]
		isCapture := p.IsCapturingMove(move)
		isPromotion := move.MoveType() == Promotion
		mayReduce := orderScore < 53 && (!isCapture || orderScore < 0) && !isPromotion

		givesCheck := p.GivesCheck(move)
		isPassedPawnPush := false // passed-pawn recognition belongs to the evaluator; not available to the core

		if mayReduce && movesSearched > 0 && !givesCheck && !isPassedPawnPush {
			if !isPV && bestNodeValue >= -ValueCheckMate/2 && lmpActive && movesSearched >= moveCountLimit {
				s.statistics.LmpCuts++
				continue
			}
			if futilityActive {
				if futilityScore > bestNodeValue {
					bestNodeValue = futilityScore
				}
				s.statistics.FpPrunings++
				continue
			}
		}

		if Settings.Search.UseWeakPlay && movesSearched > 0 {
			if s.weakPlaySkip(p, move, ply, depth) {
				continue
			}
		}

		extension := 0
		if move.To() == recaptureSquare {
			pV := Pawn.ValueOf()
			victimValue := p.GetPiece(move.To()).ValueOf()
			if signSEE(p, move) > 0 && see(p, move) > victimValue-pV/2 {
				extension = plyScale
				s.statistics.RecaptureExtension++
			}
		}
		if extension == 0 && Settings.Search.UsePawnEndgameExt && isCapture {
			pV := Pawn.ValueOf()
			totalPawns := p.Material(White) - p.MaterialNonPawn(White) + p.Material(Black) - p.MaterialNonPawn(Black)
			if totalPawns > pV && p.MaterialNonPawn(us) == 0 && p.MaterialNonPawn(us.Flip()) == p.GetPiece(move.To()).ValueOf() {
				extension = plyScale
				s.statistics.PawnEndgameExtension++
			}
		}
		if Settings.Search.UseCheckExt && givesCheck && extension == 0 {
			extension = plyScale
			s.statistics.CheckExtension++
		}
		if Settings.Search.UseThreatExt && matethreat && extension == 0 {
			extension = plyScale
			s.statistics.ThreatExtension++
		}
		extend := posExtend
		if extension > extend {
			extend = extension
		}

		lmr := 0
		if depth >= 3*plyScale && mayReduce && extend == 0 && !givesCheck && !isPassedPawnPush {
			lmrCount++
			switch {
			case lmrCount > lmrMoveCountLimit2 && depth > 5*plyScale && !isCapture:
				lmr = 3 * plyScale
			case lmrCount > lmrMoveCountLimit1 && depth > 3*plyScale && !isCapture:
				lmr = 2 * plyScale
			default:
				lmr = plyScale
			}
			s.statistics.LmrReductions++
		}

		childRecapture := SqNone
		if isCapture && (givesCheck || depth+extend > plyScale) {
			fVal := p.GetPiece(move.From()).ValueOf()
			tVal := p.GetPiece(move.To()).ValueOf()
			delta := tVal - fVal
			if delta < 0 {
				delta = -delta
			}
			if delta < Pawn.ValueOf()/2 {
				seeValue := see(p, move)
				absSee := seeValue
				if absSee < 0 {
					absSee = -absSee
				}
				if absSee < Pawn.ValueOf()/2 {
					childRecapture = move.To()
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

		newDepth := depth - plyScale + extend - lmr
		if newDepth < 0 {
			newDepth = 0
		}

		if s.checkDrawRepAnd50(p, 2) {
			value = ValueDraw
		} else if movesSearched == 0 {
			value = -s.negaScout(p, newDepth, ply+1, -beta, -alpha, true, true, childRecapture)
		} else {
			value = -s.negaScout(p, newDepth, ply+1, -b, -alpha, false, true, childRecapture)
			if value > alpha {
				if lmr > 0 {
					s.statistics.LmrResearches++
					value = -s.negaScout(p, newDepth+lmr, ply+1, -b, -alpha, false, true, childRecapture)
				}
				if value > alpha && value < beta && b != beta {
					s.statistics.PvsResearches++
					value = -s.negaScout(p, depth-plyScale+extend, ply+1, -beta, -alpha, true, true, childRecapture)
				}
			}
		}

		movesSearched++
		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()

		if s.stopConditions() {
			return ValueNA
		}

		if value > bestNodeValue {
			bestNodeValue = value
			bestNodeMove = move
			if value > alpha {
				savePV(move, s.pv[ply+1], s.pv[ply])
				if value >= beta {
					s.statistics.BetaCuts++
					if movesSearched == 1 {
						s.statistics.BetaCuts1st++
					}
					if !isCapture {
						s.killers.Store(ply, move)
						if Settings.Search.UseHistoryCounter {
							s.history.HistoryCount[us][move.From()][move.To()] += 1 << uint(depth/plyScale)
						}
						if Settings.Search.UseCounterMoves {
							lastMove := p.LastMove()
							if lastMove != MoveNone {
								s.history.CounterMoves[lastMove.From()][lastMove.To()] = move
							}
						}
					}
					ttType = BETA
					if Settings.Search.UseTT {
						s.storeTT(p, depth, ply, bestNodeMove, bestNodeValue, ttType)
					}
					return bestNodeValue
				}
				alpha = value
				ttType = EXACT
				b = alpha + 1
			}
		}
		if !isCapture && Settings.Search.UseHistoryCounter {
			us2 := us
			dec := int64(1) << uint(depth/plyScale)
			s.history.HistoryCount[us2][move.From()][move.To()] -= dec
			if s.history.HistoryCount[us2][move.From()][move.To()] < 0 {
				s.history.HistoryCount[us2][move.From()][move.To()] = 0
			}
		}
	}

	// 17. Terminal
	if movesSearched == 0 && !s.stopConditions() {
		if hasCheck {
			s.statistics.Checkmates++
			bestNodeValue = -ValueCheckMate + Value(ply)
		} else {
			s.statistics.Stalemates++
			bestNodeValue = ValueDraw
		}
		ttType = EXACT
	}

	if Settings.Search.UseTT {
		s.storeTT(p, depth, ply, bestNodeMove, bestNodeValue, ttType)
	}

	return bestNodeValue
}

func absValue(v Value) Value {
	if v < 0 {
		return -v
	}
	return v
}
