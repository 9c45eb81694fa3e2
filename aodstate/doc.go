// Package aodstate statically checks that finished traces are legal on a 2D
// acousto-optic deflector.
//
// The device is modelled per tone: every x and y tone has a coordinate and is
// either idle or active. The active rectangle is the cross product of active
// x and active y tones. A forward pass over the trace tracks this state and
// flags these misuses:
//
//   - collision: turning on a tone that is already active (ErrToneCollision);
//   - jump: an active tone whose coordinate changes other than through a
//     Move from its current coordinate (ErrToneJump);
//   - idle: turning off a tone that is not active (ErrToneIdle);
//   - shared: within a group, turning off a tone that another member still
//     holds, or that it shares with a member still holding tones on the
//     other axis (ErrToneShared).
//
// Tone indices beyond the device's tone budget are rejected with
// ErrToneRange.
//
// States form a lattice with NotAOD at the bottom and Unknown at the top.
// Violation states are absorbing: once a trace misuses the device, later
// actions are not interpreted. Two AOD states compare by their active
// sub-grid only, so idle-tone bookkeeping never affects convergence.
//
// Groups of paths are checked in lockstep (schedule.Align): in each step the
// members' actions merge into one device event. A tone addressed by several
// members in one step counts once; members disagreeing on a tone's coordinate
// produce a jump.
//
// Complexity: O(total actions × tones) per trace.
package aodstate
