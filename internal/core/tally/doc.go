/*
Package tally implements ranked-choice (instant-runoff) counting for preference motions.

Ranked vote rows are reduced to one Ballot per voter (BuildBallots), each seat is decided
by an independent instant-runoff run over the remaining candidates (Resolve), and ties for
elimination are settled by BreakTie before falling back to the smallest candidate id.
Elect fills seats one at a time, removing each winner from later runs; it does not
transfer surplus votes.

Everything here is a pure function of its inputs. Results are deterministic for a given
input: candidates are always visited in ascending id order.
*/
package tally
