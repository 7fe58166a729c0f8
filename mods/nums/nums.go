package nums

import (
	"github.com/go-gl/mathgl/mgl32"
)

func Linspace(start float64, stop float64, num int) []float64 {
	if num < 0 {
		num = 0
	}
	ret := make([]float64, num)
	multiplier := 1.0
	if num > 1 {
		multiplier = (stop - start) / float64(num-1)
	}
	for i := range ret {
		ret[i] = start + float64(i)*multiplier
	}
	if num > 1 {
		ret[len(ret)-1] = stop
	}
	return ret
}

// Grid2 returns the lattice of width*height sample locations starting at
// origin and advancing step units per column and row, in row major order.
func Grid2(origin mgl32.Vec2, step float32, width, height int) []mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return nil
	}
	xs := Linspace(float64(origin[0]), float64(origin[0]+step*float32(width-1)), width)
	ys := Linspace(float64(origin[1]), float64(origin[1]+step*float32(height-1)), height)
	ret := make([]mgl32.Vec2, 0, width*height)
	for _, y := range ys {
		for _, x := range xs {
			ret = append(ret, mgl32.Vec2{float32(x), float32(y)})
		}
	}
	return ret
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
