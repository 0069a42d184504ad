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
	"github.com/dkramer/corechess/internal/history"
	"github.com/dkramer/corechess/internal/moveslice"
	"github.com/dkramer/corechess/internal/position"
	. "github.com/dkramer/corechess/internal/types"
)

// Move ordering lives here, not in movegen: movegen hands back an unscored
// pseudo-legal list and this file scores and incrementally selects from it.
// See internal/movegen's package doc for the split.

const (
	// hashMoveScore is the sentinel assigned to the move selected from the
	// transposition table so it always sorts first.
	hashMoveScore int32 = 10_000

	// killerScore0/killerScore1 are the bonuses added for the two killer
	// slots, kept well below any capture score so MVV/LVA still wins
	// against killers on mixed move lists.
	killerScore0 int32 = 900
	killerScore1 int32 = 800
)

// pieceOrder ranks piece types from least to most valuable for MVV/LVA:
// pawn < knight < bishop < rook < queen < king. Indexed by PieceType.
var pieceOrder = [PtLength]int32{0, 6, 1, 2, 3, 4, 5}

func orderOf(pt PieceType) int32 {
	return pieceOrder[pt]
}

// KillerTable holds, per ply, the quiet moves that most recently caused a
// beta cutoff. Slot 0 is the most recent; storing a new killer demotes the
// previous slot-0 occupant to slot 1.
type KillerTable struct {
	killers [MaxPly][2]Move
}

// NewKillerTable creates an empty killer table sized for MaxPly.
func NewKillerTable() *KillerTable {
	return &KillerTable{}
}

// Store records m as the newest killer at ply.
func (kt *KillerTable) Store(ply int, m Move) {
	if kt.killers[ply][0] == m {
		return
	}
	kt.killers[ply][1] = kt.killers[ply][0]
	kt.killers[ply][0] = m
}

// Clear resets both killer slots at ply.
func (kt *KillerTable) Clear(ply int) {
	kt.killers[ply][0] = MoveNone
	kt.killers[ply][1] = MoveNone
}

// IsKiller reports whether m is a stored killer at ply.
func (kt *KillerTable) IsKiller(ply int, m Move) bool {
	return m == kt.killers[ply][0] || m == kt.killers[ply][1]
}

func (kt *KillerTable) score(ply int, m Move) int32 {
	switch m {
	case kt.killers[ply][0]:
		return killerScore0
	case kt.killers[ply][1]:
		return killerScore1
	default:
		return 0
	}
}

// orderer assigns a transient ordering score to each move in a pseudo-legal
// list and incrementally selects the best-scoring remaining move. Per
// spec.md 4.B/9 this is deliberately a selection sort driven by the search
// loop itself, not a full sort: SEE is only ever paid for on moves the
// search actually visits.
type orderer struct {
	scores [MaxMoves]int32
}

func newOrderer() *orderer {
	return &orderer{}
}

// selectHashMove looks for hashMove in moves, swaps it to index 0 and gives
// it the sentinel score so it is always selected first. Returns false
// (without modifying the list) if hashMove is MoveNone or not present.
func (o *orderer) selectHashMove(moves *moveslice.MoveSlice, hashMove Move) bool {
	if hashMove == MoveNone {
		return false
	}
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i).MoveOf() == hashMove {
			if i != 0 {
				o.swap(moves, 0, i)
			}
			o.scores[0] = hashMoveScore
			return true
		}
	}
	return false
}

// scoreMoveList scores moves[startIdx:moves.Len()) in place.
//
// Captures and promotions score by MVV/LVA (order(victim)*8-order(attacker),
// scaled, then nudged by the sign of SEE). Quiet moves score by killer
// bonus, falling back to the history count for the (side, from, to) triple.
func (o *orderer) scoreMoveList(p *position.Position, moves *moveslice.MoveSlice, startIdx int, ply int, kt *KillerTable, hist *history.History) {
	us := p.NextPlayer()
	for i := startIdx; i < moves.Len(); i++ {
		o.scores[i] = o.scoreMove(p, moves.At(i), us, ply, kt, hist)
	}
}

func (o *orderer) scoreMove(p *position.Position, m Move, us Color, ply int, kt *KillerTable, hist *history.History) int32 {
	if p.IsCapturingMove(m) || m.MoveType() == Promotion {
		var victim PieceType
		switch {
		case m.MoveType() == EnPassant:
			victim = Pawn
		case m.MoveType() == Promotion:
			victim = m.PromotionType()
		default:
			victim = p.GetPiece(m.To()).TypeOf()
		}
		attacker := p.GetPiece(m.From()).TypeOf()
		base := (orderOf(victim)*8 - orderOf(attacker)) * 100
		switch signSEE(p, m) {
		case 1:
			base += 100
		case 0:
			base += 50
		default:
			base -= 50
		}
		return base * 100
	}
	if bonus := kt.score(ply, m); bonus != 0 {
		return bonus + 50
	}
	return int32(hist.HistoryCount[us][m.From()][m.To()])
}

// selectBest performs one pass of selection sort: it finds the
// highest-scoring move in moves[i:moves.Len()), swaps it into slot i and
// returns it.
func (o *orderer) selectBest(moves *moveslice.MoveSlice, i int) Move {
	best := i
	for j := i + 1; j < moves.Len(); j++ {
		if o.scores[j] > o.scores[best] {
			best = j
		}
	}
	if best != i {
		o.swap(moves, i, best)
	}
	return moves.At(i)
}

func (o *orderer) swap(moves *moveslice.MoveSlice, i, j int) {
	mi, mj := moves.At(i), moves.At(j)
	moves.Set(i, mj)
	moves.Set(j, mi)
	o.scores[i], o.scores[j] = o.scores[j], o.scores[i]
}
