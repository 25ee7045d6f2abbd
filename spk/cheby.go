package spk

// Chebyshev evaluates a Chebyshev polynomial series at normalized time s in
// [-1, 1]. Exported so other segment-bearing DAF formats (package bpc's
// Euler-angle segments) can reuse the same evaluator without duplicating it.
func Chebyshev(coeffs []float64, s float64) float64 {
	return chebyshev(coeffs, s)
}

// ChebyshevDerivative evaluates the derivative of a Chebyshev polynomial
// series at normalized time s. Exported for the same reason as Chebyshev.
func ChebyshevDerivative(coeffs []float64, s float64) float64 {
	return chebyshevDerivative(coeffs, s)
}

// chebyshev evaluates a Chebyshev polynomial series at normalized time s in
// [-1, 1] via the Clenshaw recurrence.
func chebyshev(coeffs []float64, s float64) float64 {
	n := len(coeffs)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return coeffs[0]
	}

	s2 := 2.0 * s
	w0 := coeffs[n-1]
	w1 := 0.0
	for i := n - 2; i >= 1; i-- {
		w0, w1 = coeffs[i]+s2*w0-w1, w0
	}
	return coeffs[0] + s*w0 - w1
}

// chebyshevDerivative evaluates the derivative of a Chebyshev polynomial
// series at normalized time s, by converting to derivative coefficients
// (Numerical Recipes / IERS conventions recurrence) and evaluating those via
// Clenshaw.
func chebyshevDerivative(coeffs []float64, s float64) float64 {
	n := len(coeffs)
	if n < 2 {
		return 0
	}

	m := n - 1
	dc := make([]float64, m)

	for j := m - 1; j >= 1; j-- {
		var djp2 float64
		if j+2 < m {
			djp2 = dc[j+2]
		}
		dc[j] = djp2 + 2.0*float64(j+1)*coeffs[j+1]
	}
	var d2 float64
	if m > 2 {
		d2 = dc[2]
	}
	dc[0] = (d2 + 2.0*coeffs[1]) / 2.0

	return chebyshev(dc, s)
}
