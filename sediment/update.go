package sediment

import "github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"

// Update advances the elevation surface one timestep in place:
//
//	dz = -(dt/bulkDensity) * div * damping
//	z  = clamp(z+dz, zmin, zmax)
//
// dz receives the damped, pre-clamp elevation delta so callers can report
// the physically computed erosion rate separately from the bounded surface.
// Clamping is a hard pin, not a renormalization; mass-balance violations at
// pinned cells are accepted.
func Update(z, div grid.Field, dt, bulkDensity, damping, zmin, zmax float64, dz grid.Field) {
	k := -dt / bulkDensity * damping
	for i := range z {
		d := k * float64(div[i])
		dz[i] = float32(d)
		zz := float64(z[i]) + float64(dz[i])
		if zz < zmin {
			zz = zmin
		} else if zz > zmax {
			zz = zmax
		}
		z[i] = float32(zz)
	}
}
