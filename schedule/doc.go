// Package schedule decides, for every value of a move program, what kind of
// schedulable object it is, binds tasks to tones and groups tone-bound paths
// into parallel windows.
//
// The Lattice is a bounded lattice:
//
//	NoPath (bottom)
//	  ⊑ TweezerTask | DeviceFunction | Reverse | ConcretePath | NeedsTones
//	    | ParallelSchedule | AutoSchedule
//	  ⊑ NoSchedule (top)
//
// Middle elements are ordered by equality, except Reverse, ParallelSchedule
// and AutoSchedule, which are ordered pointwise over their members. Join of
// unrelated elements is top.
//
// Pipeline:
//
//  1. Analyzer.Run walks an ir.Program forward and assigns a Lattice to every
//     value. Binding, reversal and trace generation happen here; every value
//     that widens to top gets a Diagnostic naming the statement and cause.
//  2. Auto groups are handed to a Scheduler. GreedyScheduler colours the
//     tone-conflict graph first-fit in input order and allocates tones for
//     unbound members.
//  3. Rewrite materializes each played Auto group into re-bound device
//     functions, Parallel statements for multi-member groups and plain Play
//     for single-member groups, in ascending group order.
//  4. Materialize turns the played values of a fully bound program into a
//     Schedule of concrete action.Path groups.
//
// Group legality: two paths conflict when their X tones intersect AND their
// Y tones intersect, or when their traces cannot run in lockstep (see Align).
// Paths in one group are therefore disjoint on at least one axis.
//
// Lockstep: members of a group execute step k of their traces together.
// Members must agree on the kind of action at every common step; a member
// whose trace is shorter holds its final state; Move runs of different length
// are padded by holding the last waypoint.
package schedule
