package calculator

import (
	"math"
	"strconv"
)

// Format renders a result for the display. A negative precision selects the
// shortest representation that round-trips ("14", "2.5", exponent form only
// for very large or very small magnitudes); otherwise the value
// is printed with exactly precision fractional digits ("14.000000" for 6).
func Format(value float64, precision int) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Inf"
	case math.IsInf(value, -1):
		return "-Inf"
	}
	if value == 0 {
		// drop the sign of negative zero
		value = 0
	}
	if precision < 0 {
		if abs := math.Abs(value); abs >= 1e21 || (abs != 0 && abs < 1e-6) {
			return strconv.FormatFloat(value, 'g', -1, 64)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
