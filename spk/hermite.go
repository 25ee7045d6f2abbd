package spk

// hermiteInterpolate evaluates, at t, the Hermite interpolating polynomial
// built from len(epochs) nodes that each carry a function value and a
// derivative. It follows the reference HRMINT routine's in-place recurrence
// over a doubled-node work table rather than a textbook Newton
// divided-difference table: two parallel columns (vals, derivs), each
// addressed 1-based with index 0 unused so the arithmetic below reads the
// same as the routine it mirrors. Within every iteration the derivative
// column is computed before the value column is overwritten, since later
// entries depend on the prior column's un-overwritten values — collapsing
// the two passes into one, or reordering them, changes the result.
func hermiteInterpolate(epochs, values, derivs []float64, t float64) (value, deriv float64) {
	n := len(epochs)
	m := 2 * n

	vals := make([]float64, m+1)
	dvs := make([]float64, m+1)

	for i := 1; i <= n; i++ {
		vals[2*i-1] = values[i-1]
		vals[2*i] = derivs[i-1]
	}

	for i := 1; i <= n-1; i++ {
		c1 := epochs[i] - t
		c2 := t - epochs[i-1]
		denom := epochs[i] - epochs[i-1]

		prev := 2*i - 1
		this := prev + 1
		next := this + 1

		dvs[prev] = vals[this]
		dvs[this] = (vals[next] - vals[prev]) / denom

		temp := vals[this]*(t-epochs[i-1]) + vals[prev]
		vals[this] = (c1*vals[prev] + c2*vals[next]) / denom
		vals[prev] = temp
	}

	dvs[m-1] = vals[m]
	vals[m-1] = vals[m]*(t-epochs[n-1]) + vals[m-1]

	for j := 2; j <= m-1; j++ {
		for i := 1; i <= m-j; i++ {
			xi := (i + 1) / 2
			xij := (i + j + 1) / 2
			c1 := epochs[xij-1] - t
			c2 := t - epochs[xi-1]
			denom := epochs[xij-1] - epochs[xi-1]

			dvs[i] = (c1*dvs[i] + c2*dvs[i+1] + (vals[i+1] - vals[i])) / denom
			vals[i] = (c1*vals[i] + c2*vals[i+1]) / denom
		}
	}

	return vals[1], dvs[1]
}
