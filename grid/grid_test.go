package grid

import "testing"

func TestNewDefinition(t *testing.T) {
	for _, tc := range []struct {
		nr, nc int
		cw     float64
		ok     bool
	}{
		{50, 50, 10, true},
		{1, 1, 0.5, true},
		{0, 50, 10, false},
		{50, -1, 10, false},
		{50, 50, 0, false},
		{50, 50, -10, false},
	} {
		_, err := NewDefinition(tc.nr, tc.nc, tc.cw)
		if (err == nil) != tc.ok {
			t.Errorf("NewDefinition(%d,%d,%g): err = %v, want ok = %v", tc.nr, tc.nc, tc.cw, err, tc.ok)
		}
	}
}

func TestIndexing(t *testing.T) {
	gd := Definition{NR: 3, NC: 4, Cw: 10}
	if gd.Ncells() != 12 {
		t.Fatalf("Ncells = %d, want 12", gd.Ncells())
	}
	if gd.CellArea() != 100 {
		t.Fatalf("CellArea = %g, want 100", gd.CellArea())
	}
	if i := gd.CellIndex(2, 3); i != 11 {
		t.Fatalf("CellIndex(2,3) = %d, want 11", i)
	}
	r, c := gd.RowCol(7)
	if r != 1 || c != 3 {
		t.Fatalf("RowCol(7) = (%d,%d), want (1,3)", r, c)
	}
}

func TestFieldCopyIndependence(t *testing.T) {
	gd := Definition{NR: 2, NC: 2, Cw: 1}
	f := NewField(gd)
	f.Fill(3)
	g := f.Copy()
	g[0] = -1
	if f[0] != 3 {
		t.Fatalf("copy aliases the source: f[0] = %g", f[0])
	}
	f64 := f.Float64s()
	if len(f64) != 4 || f64[1] != 3 {
		t.Fatalf("Float64s = %v", f64)
	}
}
