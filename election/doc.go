// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election holds the decision logic of the election engine as pure
functions: the scheduling guard, the lifecycle state machine, and the tally.
Nothing here touches the database; the store package gathers the rows and
applies the results inside transactions.

# Scheduling Guard

Draft and active elections of the same type may not overlap. Windows are
closed intervals, so [a,b] and [c,d] overlap iff a <= d and c <= b:

	if c := election.CheckConflict(existing, typeID, start, end, ""); c != nil {
		return election.ConflictError(c)
	}

# Lifecycle

	draft ──activate──▶ active ──complete──▶ completed
	  │                   │
	  └──────cancel───────┴──────────────▶ cancelled

Activation needs at least one active position with a candidate.
Cancellation is refused once any vote exists. Nothing re-enters draft.

# Tally

Tally ranks candidates by vote count (descending), then display name, and
assigns competition ranks (1, 1, 3). A candidate wins when ranked first
with at least one vote, so ties at the top produce co-winners and a position
with no votes has no winner.

# Errors

Every failure is an *Error with a Kind. Use errors.Is with the sentinels:

	if errors.Is(err, election.ErrConflict) { ... }
*/
package election
