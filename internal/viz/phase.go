package viz

// PhasePortrait draws the (x, v) curve of a trajectory onto a braille
// canvas of w x h character cells, connecting consecutive samples.
func PhasePortrait(xs, vs []float64, w, h int) *Canvas {
	c := NewCanvas(w, h)
	if len(xs) < 2 || len(xs) != len(vs) {
		return c
	}

	xMin, xMax := bounds(xs)
	vMin, vMax := bounds(vs)

	// 5% margin so the curve never touches the border cells.
	xMin, xMax = pad(xMin, xMax)
	vMin, vMax = pad(vMin, vMax)

	pw := float64(w*2 - 1)
	ph := float64(h*4 - 1)

	toPixel := func(x, v float64) (int, int) {
		px := int((x - xMin) / (xMax - xMin) * pw)
		py := int(ph - (v-vMin)/(vMax-vMin)*ph)
		return px, py
	}

	px0, py0 := toPixel(xs[0], vs[0])
	for i := 1; i < len(xs); i++ {
		px1, py1 := toPixel(xs[i], vs[i])
		c.DrawLine(px0, py0, px1, py1)
		px0, py0 = px1, py1
	}

	return c
}

func bounds(vals []float64) (min, max float64) {
	min, max = vals[0], vals[0]
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func pad(min, max float64) (float64, float64) {
	r := max - min
	if r == 0 {
		r = 1
	}
	return min - r*0.05, max + r*0.05
}
