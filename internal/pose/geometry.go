package pose

import "math"

// Angle returns the angle in degrees at vertex between the vectors
// (a-vertex) and (c-vertex), using the dot-product/arccosine formula on the
// 2-D projection. The cosine is clamped to [-1,1] before inverse-cosine so
// floating rounding near collinear points cannot produce a domain error.
// A zero-length vector yields 0, never an error: a single degenerate frame
// must not halt the stream.
func Angle(a, vertex, c Landmark) float64 {
	v1x, v1y := a.X-vertex.X, a.Y-vertex.Y
	v2x, v2y := c.X-vertex.X, c.Y-vertex.Y

	len1 := math.Hypot(v1x, v1y)
	len2 := math.Hypot(v2x, v2y)
	if len1 == 0 || len2 == 0 {
		return 0
	}

	cos := (v1x*v2x + v1y*v2y) / (len1 * len2)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	return math.Acos(cos) * 180 / math.Pi
}

// AngleAtan2 returns the same vertex angle computed as atan2(|cross|, dot).
// It agrees with Angle for well-separated points but is better conditioned
// near 0 and 180 degrees. Exercise thresholds were tuned against one formula
// or the other, so both are kept rather than unified.
func AngleAtan2(a, vertex, c Landmark) float64 {
	v1x, v1y := a.X-vertex.X, a.Y-vertex.Y
	v2x, v2y := c.X-vertex.X, c.Y-vertex.Y

	if (v1x == 0 && v1y == 0) || (v2x == 0 && v2y == 0) {
		return 0
	}

	cross := v1x*v2y - v1y*v2x
	dot := v1x*v2x + v1y*v2y

	return math.Atan2(math.Abs(cross), dot) * 180 / math.Pi
}

// Distance returns the Euclidean distance between two landmarks on the
// 2-D (x,y) projection.
func Distance(a, b Landmark) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Midpoint returns the midpoint of two landmarks. Z is averaged; the
// visibility of the result is the lower of the two inputs so a midpoint is
// never more trusted than its least visible endpoint.
func Midpoint(a, b Landmark) Landmark {
	return Landmark{
		X:          (a.X + b.X) / 2,
		Y:          (a.Y + b.Y) / 2,
		Z:          (a.Z + b.Z) / 2,
		Visibility: math.Min(a.Visibility, b.Visibility),
	}
}
