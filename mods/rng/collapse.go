package rng

// Large odd constants, one per axis, so that swapping coordinates
// between axes does not produce the same input.
const (
	axisX uint32 = 0x9e3779b1
	axisY uint32 = 0x85ebca6b
	axisZ uint32 = 0xc2b2ae35
	axisW uint32 = 0x27d4eb2f
)

var axes = [4]uint32{axisX, axisY, axisZ, axisW}

func Collapse2(x, y int32) uint32 {
	return uint32(x)*axisX + uint32(y)*axisY
}

func Collapse3(x, y, z int32) uint32 {
	return uint32(x)*axisX + uint32(y)*axisY + uint32(z)*axisZ
}

func Collapse4(x, y, z, w int32) uint32 {
	return uint32(x)*axisX + uint32(y)*axisY + uint32(z)*axisZ + uint32(w)*axisW
}

// CollapseN collapses the first dim coordinates of p.
func CollapseN(p [4]int32, dim int) uint32 {
	var h uint32
	for i := 0; i < dim && i < len(axes); i++ {
		h += uint32(p[i]) * axes[i]
	}
	return h
}
