package calc

import (
	"math/big"
	"strconv"
)

// DefaultDigits is the number of digits after the decimal point that results
// are formatted with by default.
const DefaultDigits = 5

// Format formats a result in fixed-point notation with the given number of
// digits after the point. The decimal separator is always a point.
// Infinities and NaN format as +Inf, -Inf and NaN.
func Format(f float64, digits int) string {
	return strconv.FormatFloat(f, 'f', digits, 64)
}

// FormatBig is like Format for *big.Float results.
func FormatBig(x *big.Float, digits int) string {
	return x.Text('f', digits)
}
