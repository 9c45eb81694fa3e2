// Package tweezer turns atom-rearrangement choreographies for an acousto-optic
// deflector (AOD) into concrete, checked tone schedules.
//
// 🚀 What is tweezer?
//
//	A small compiler pipeline for neutral-atom devices:
//		• Grids: immutable 2D site lattices with views, slices and tiling
//		• Actions: SetLocation, TurnOn, TurnOff and Move over tone selectors
//		• Traces: tasks record actions on a generator; traces reverse exactly
//		• Scheduling: a lattice analysis binds tasks to tones and groups
//		  auto-scheduled paths into conflict-free lockstep groups
//		• Legality: an AOD state checker rejects collisions and jumps
//
// ✨ How it fits together
//
//	arch/    : HCL architecture file: AOD tone budget, zones, special grids
//	plan/    : HCL plan file: tasks, paths and plays compiled to an ir.Program
//	ir/      : straight-line move program the analysis runs on
//	schedule/: lattice, Analyzer, GreedyScheduler, AutoRewriter, Materialize
//	aodstate/: per-step AOD state checker for single paths and groups
//	export/  : YAML hand-off of a materialized schedule
//	cmd/tweezer: the check, trace and zones commands
//
// Quick start:
//
//	spec, _ := arch.Load(ctx, "device.hcl")
//	p, _ := plan.Load(ctx, "moves.hcl", spec)
//	sched, _, err := schedule.Compile(p.Program, schedule.WithToneBudget(spec.XTones, spec.YTones))
//	if err != nil { ... }
//	if _, err := aodstate.CheckSchedule(sched); err != nil { ... }
//	_ = export.Encode(os.Stdout, sched)
package tweezer
