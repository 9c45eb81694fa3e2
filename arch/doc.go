// Package arch loads architecture files: the device's tone budget, named
// trap zones, special grids and numeric constants.
//
// Architecture files are HCL:
//
//	aod {
//	  x_tones = 16
//	  y_tones = 16
//	}
//
//	constants {
//	  float = { pitch = 10, gap = 4 }
//	  int   = { columns = 4 }
//	}
//
//	zone "storage" {
//	  x_spacing = [for i in range(const.int.columns - 1) : const.float.pitch]
//	  y_spacing = [5]
//	  origin    = [0, 0]
//	}
//
//	zone "gate" {
//	  grid = shift(zone.storage, 0, 40)
//	}
//
//	special_grid "pairs" {
//	  grid = view(zone.gate, [0, 1], [0])
//	}
//
// A zone is either spacing based (x_spacing, y_spacing, optional origin),
// position based (x_positions, y_positions) or a grid expression. Zones may
// reference earlier zones; special grids may reference every zone and earlier
// special grids.
//
// Grids are first-class HCL values (a cty capsule type). The functions grid,
// positions, shift, scale, repeat, view, slice, width and height operate on
// them; see Functions. Plan files reuse the same evaluation context.
//
// Errors:
//   - ErrZoneNotFound, ErrGridNotFound, ErrConstantNotFound on lookups.
//   - ErrBadZone for zones whose attributes do not describe a grid.
//   - HCL diagnostics are returned wrapped, with file positions.
package arch
