// Package ir is the minimal move-program representation the scheduling
// analysis runs on: a straight-line list of SSA statements whose values may
// carry compile-time constant hints.
//
// Statements:
//
//	%v = const <value>                 compile-time constant (task, tone list, grid, …)
//	%v = opaque <name>                 value unknown until run time
//	%v = tweezer_task %task            unbound task
//	%v = device_fn %task, %x, %y       task bound to x/y tone lists
//	%v = reverse %fn                   time-reversed task
//	%v = gen %fn, %in…                 trace of fn on inputs
//	%v = parallel %p…                  explicit parallel composition
//	%v = auto %p…                      "as parallel as possible"
//	     play %p                       execute a path or schedule
//
// Programs are built with Builder and never mutated afterwards; rewrites build
// a new Program with Rebuild, which keeps existing value ids stable.
package ir
