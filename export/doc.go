// Package export writes materialized schedules as YAML for the device
// controller and reads them back.
//
// Layout:
//
//	groups:
//	  - paths:
//	      - x_tones: [0, 1]
//	        y_tones: [0]
//	        actions:
//	          - op: set_location
//	            grid: {x: [0, 10], y: [0]}
//	          - op: turn_on
//	            x: all
//	            y: all
//	          - op: move
//	            waypoints:
//	              - {x: [0, 10], y: [0]}
//	              - {x: [0, 10], y: [5]}
//	          - op: turn_off
//	            x: [0]
//	            y: {start: 0, step: 1}
//
// Grids are written as resulting positions. Selectors are "all", a list of
// local indices or a {start, stop, step} range whose stop is omitted when it
// runs through the last tone. Groups execute in order, the paths of a group in
// lockstep.
package export
