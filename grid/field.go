package grid

// Field is a single-precision raster aligned to a Definition, row-major.
// Elevation grids can grow large; float32 storage halves the footprint while
// per-cell arithmetic is carried out in float64 by the callers.
type Field []float32

// NewField allocates a zeroed field sized to the grid.
func NewField(gd Definition) Field { return make(Field, gd.Ncells()) }

// Copy returns an independent copy of the field.
func (f Field) Copy() Field {
	o := make(Field, len(f))
	copy(o, f)
	return o
}

// Fill sets every cell to v.
func (f Field) Fill(v float32) {
	for i := range f {
		f[i] = v
	}
}

// Float64s widens the field for packages that operate on []float64.
func (f Field) Float64s() []float64 {
	o := make([]float64, len(f))
	for i, v := range f {
		o[i] = float64(v)
	}
	return o
}
