package calc

import "math"

// Float64 is the float64 arithmetic. Its operations follow IEEE 754, so it
// never panics: 1/0 is +Inf and 0/0 is NaN.
type Float64 struct{}

var _ Number[float64] = Float64{}

func (Float64) Literal(text string, f float64) float64 { return f }
func (Float64) Pi() float64 { return math.Pi }
func (Float64) E() float64 { return math.E }
func (Float64) Neg(x float64) float64 { return -x }
func (Float64) Add(x, y float64) float64 { return x + y }
func (Float64) Sub(x, y float64) float64 { return x - y }
func (Float64) Mul(x, y float64) float64 { return x * y }
func (Float64) Quo(x, y float64) float64 { return x / y }
func (Float64) Sin(x float64) float64 { return math.Sin(x) }
func (Float64) Cos(x float64) float64 { return math.Cos(x) }
func (Float64) Exp(x float64) float64 { return math.Exp(x) }
