package grid

import "fmt"

// Definition describes a dense raster of uniform square cells, row-major,
// NR rows by NC columns, cell width Cw in metres.
type Definition struct {
	NR, NC int
	Cw     float64
}

// NewDefinition builds a grid definition, checking dimensions and cell width.
func NewDefinition(nr, nc int, cw float64) (Definition, error) {
	if nr <= 0 || nc <= 0 {
		return Definition{}, fmt.Errorf("grid.NewDefinition: dimensions must be positive, got %d x %d", nr, nc)
	}
	if cw <= 0 {
		return Definition{}, fmt.Errorf("grid.NewDefinition: cell width must be positive, got %g", cw)
	}
	return Definition{NR: nr, NC: nc, Cw: cw}, nil
}

// Ncells returns the number of cells in the grid.
func (gd Definition) Ncells() int { return gd.NR * gd.NC }

// CellArea returns the plan area of one cell.
func (gd Definition) CellArea() float64 { return gd.Cw * gd.Cw }

// CellIndex returns the linear index of cell (row, col).
func (gd Definition) CellIndex(r, c int) int { return r*gd.NC + c }

// RowCol returns the (row, col) of a linear cell index.
func (gd Definition) RowCol(i int) (int, int) { return i / gd.NC, i % gd.NC }
