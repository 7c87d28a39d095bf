// Package tem derives terrain metrics (gradients, slope, aspect, flow
// accumulation) from a raster elevation model.
package tem

import "github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"

// 3x3 Sobel weights; kx responds to the x (column) direction, ky to the
// y (row) direction.
var (
	kx = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	ky = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func convolve(gd grid.Definition, f grid.Field, k *[3][3]float64, dst grid.Field) {
	nr, nc := gd.NR, gd.NC
	clampr := func(r int) int {
		if r < 0 {
			return 0
		}
		if r >= nr {
			return nr - 1
		}
		return r
	}
	clampc := func(c int) int {
		if c < 0 {
			return 0
		}
		if c >= nc {
			return nc - 1
		}
		return c
	}
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			s := 0.
			for dr := -1; dr <= 1; dr++ {
				rr := clampr(r + dr)
				for dc := -1; dc <= 1; dc++ {
					w := k[dr+1][dc+1]
					if w == 0 {
						continue
					}
					s += w * float64(f[rr*nc+clampc(c+dc)])
				}
			}
			dst[r*nc+c] = float32(s / gd.Cw)
		}
	}
}

// GradX fills dst with the x-direction derivative of f, replicating the
// border cells outward and scaling by cell width.
func GradX(gd grid.Definition, f, dst grid.Field) { convolve(gd, f, &kx, dst) }

// GradY fills dst with the y-direction derivative of f.
func GradY(gd grid.Definition, f, dst grid.Field) { convolve(gd, f, &ky, dst) }

// Gradient fills dx and dy with both spatial derivatives of f.
func Gradient(gd grid.Definition, f, dx, dy grid.Field) {
	GradX(gd, f, dx)
	GradY(gd, f, dy)
}
