// Package plan loads move programs from HCL plan files.
//
// A plan declares tasks, paths and plays:
//
//	task "pick" {
//	  params = ["start"]
//
//	  step "set_location" { grid = param.start }
//	  step "turn_on" {}
//	  step "move" { grid = shift(param.start, 0, 5) }
//	  step "turn_off" { x = [0] }
//	}
//
//	path "left" {
//	  task    = "pick"
//	  x_tones = [0, 1]
//	  y_tones = [0]
//	  args    = [view(zone.storage, [0, 1], [0])]
//	}
//
//	path "right" {
//	  task    = "pick"
//	  reverse = true
//	  args    = [view(zone.storage, [2, 3], [0])]
//	}
//
//	play "auto" {
//	  paths = ["left", "right"]
//	}
//
// Tasks become trace.Script values. Step grids are HCL expressions evaluated
// when the task is traced, with the call arguments bound to param.<name>;
// selectors x and y default to all tones and accept "all", a list of local
// indices or an object {start, stop, step}.
//
// A path with x_tones and y_tones binds its task to those tones; a path
// without them leaves tone allocation to the scheduler. Path arguments and
// tones are evaluated once, at load time, in the architecture's context
// (zone, special, const, aod and the grid functions).
//
// Plays run in file order. Mode "sequential" plays each path on its own,
// "parallel" plays them in lockstep and "auto" lets the scheduler group them.
// Paths that no play names are still generated, so they can be traced.
package plan
