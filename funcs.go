package calc

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// BigFloat is arbitrary-precision arithmetic with *big.Float. Every
// operation returns a new value rounded to Prec bits, or 64 bits if Prec is
// 0. Operations with no defined result, such as 0/0, ∞-∞, or sin(∞), panic
// with big.ErrNaN, which evaluation reports as a *DomainError.
type BigFloat struct {
	Prec uint
}

var _ Number[*big.Float] = BigFloat{}

func (b BigFloat) prec() uint {
	if b.Prec == 0 {
		return 64
	}
	return b.Prec
}

func (b BigFloat) new() *big.Float {
	return new(big.Float).SetPrec(b.prec())
}

func (b BigFloat) Literal(text string, f float64) *big.Float {
	r, _, err := b.new().Parse(text, 10)
	if err != nil {
		// Literals are only ever digits and a point, which always parse.
		panic("calc: invalid number literal " + strconv.Quote(text) + ": " + err.Error())
	}
	return r
}

func (b BigFloat) Pi() *big.Float {
	return bigfloat.Pi(b.new())
}

func (b BigFloat) E() *big.Float {
	var one big.Float
	one.SetPrec(b.prec()).SetInt64(1)
	return bigfloat.Exp(b.new(), &one)
}

func (b BigFloat) Neg(x *big.Float) *big.Float { return b.new().Neg(x) }
func (b BigFloat) Add(x, y *big.Float) *big.Float { return b.new().Add(x, y) }
func (b BigFloat) Sub(x, y *big.Float) *big.Float { return b.new().Sub(x, y) }
func (b BigFloat) Mul(x, y *big.Float) *big.Float { return b.new().Mul(x, y) }
func (b BigFloat) Quo(x, y *big.Float) *big.Float { return b.new().Quo(x, y) }

func (b BigFloat) Sin(x *big.Float) *big.Float {
	return sin(b.new(), x)
}

func (b BigFloat) Cos(x *big.Float) *big.Float {
	return cos(b.new(), x)
}

func (b BigFloat) Exp(x *big.Float) *big.Float {
	z := b.new()
	if x.IsInf() {
		if x.Signbit() {
			return z
		}
		return z.SetInf(false)
	}
	return bigfloat.Exp(z, x)
}

// guardbits is the extra precision used for intermediate trig results.
const guardbits = 64

// sin sets z to the sine of x rounded to z's precision and returns z.
func sin(z, x *big.Float) *big.Float {
	if x.IsInf() {
		panic(big.ErrNaN{})
	}
	wp := z.Prec() + guardbits
	r := reduce(x, wp)
	r2 := new(big.Float).SetPrec(wp).Mul(r, r)
	return z.Set(series(r, r2, 2, wp))
}

// cos sets z to the cosine of x rounded to z's precision and returns z.
func cos(z, x *big.Float) *big.Float {
	if x.IsInf() {
		panic(big.ErrNaN{})
	}
	wp := z.Prec() + guardbits
	r := reduce(x, wp)
	r2 := new(big.Float).SetPrec(wp).Mul(r, r)
	one := new(big.Float).SetPrec(wp).SetInt64(1)
	return z.Set(series(one, r2, 1, wp))
}

// series sums the alternating Taylor series t - t·r2/(k(k+1)) + ... until the
// terms are smaller than 2^-wp. t is the first term and is modified.
func series(t, r2 *big.Float, k int64, wp uint) *big.Float {
	sum := new(big.Float).SetPrec(wp).Set(t)
	var d big.Float
	lim := -int(wp)
	for n := k; ; n += 2 {
		t.Mul(t, r2)
		t.Quo(t, d.SetInt64(n*(n+1)))
		t.Neg(t)
		if t.Sign() == 0 || t.MantExp(nil) < lim {
			return sum
		}
		sum.Add(sum, t)
	}
}

// reduce returns a new value congruent to x modulo 2π in [-π, π] with
// precision wp. x must be finite.
func reduce(x *big.Float, wp uint) *big.Float {
	// Subtracting a multiple of 2π cancels the integer bits of x/2π, so π
	// needs that many extra bits.
	p := wp
	if e := x.MantExp(nil); e > 0 {
		p += uint(e)
	}
	pi := bigfloat.Pi(new(big.Float).SetPrec(p))
	r := new(big.Float).SetPrec(p).Set(x)
	if new(big.Float).Abs(r).Cmp(pi) <= 0 {
		return r.SetPrec(wp)
	}
	tau := new(big.Float).SetPrec(p).Add(pi, pi)
	n, _ := new(big.Float).SetPrec(p).Quo(r, tau).Int(nil)
	m := new(big.Float).SetPrec(p).SetInt(n)
	r.Sub(r, m.Mul(m, tau))
	switch {
	case r.Cmp(pi) > 0:
		r.Sub(r, tau)
	case r.Cmp(new(big.Float).Neg(pi)) < 0:
		r.Add(r, tau)
	}
	return r.SetPrec(wp)
}
