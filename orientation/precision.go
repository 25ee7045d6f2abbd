package orientation

// precisionMaxTerms bounds how many of a Pole's periodic correction Terms
// are summed. A negative value (the default) means "use all terms present";
// a caller wanting the coarse leading-order pole model can clamp it down.
// Package-level, not safe for concurrent use — call once at program startup.
var precisionMaxTerms = -1

// SetMaxTerms bounds the number of periodic correction terms summed by
// Pole.Angles and Pole.Rates. Pass a negative value to use every term a
// Pole carries.
func SetMaxTerms(n int) {
	precisionMaxTerms = n
}

// MaxTerms returns the current term-count bound.
func MaxTerms() int {
	return precisionMaxTerms
}
