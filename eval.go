package calc

import (
	"math/big"
)

// Number is an arithmetic in which to evaluate expressions. Operations may
// panic with big.ErrNaN when their result is undefined; evaluation reports
// such a panic as a *DomainError. Any other panic is not recovered.
type Number[T any] interface {
	// Literal converts a numeric literal. text is the source of the literal,
	// a run of decimal digits optionally followed by a point and more digits.
	// f is text parsed to the nearest float64.
	Literal(text string, f float64) T
	Pi() T
	E() T

	Neg(x T) T
	Add(x, y T) T
	Sub(x, y T) T
	Mul(x, y T) T
	Quo(x, y T) T

	Sin(x T) T
	Cos(x T) T
	Exp(x T) T
}

// evaluator parses an expression and computes its value in one pass. Each
// precedence level has its own method, and each method returns with the
// tokenizer on the first token after the subexpression it parsed.
type evaluator[T any] struct {
	tk  tokenizer
	num Number[T]
}

// EvalWith evaluates an expression using the given arithmetic. The
// expression is normalized first.
func EvalWith[T any](expr string, num Number[T], opts ...Option) (T, error) {
	var zero T
	cfg := options(opts)
	ev := evaluator[T]{
		tk:  tokenizer{src: Normalize(expr), log: cfg.log},
		num: num,
	}
	if err := ev.tk.advance(); err != nil {
		return zero, err
	}
	r, err := ev.sum()
	if err != nil {
		return zero, err
	}
	if !cfg.lenient {
		if err := ev.tk.expect(TokenEnd); err != nil {
			return zero, err
		}
	}
	return r, nil
}

// Eval evaluates an expression with float64 arithmetic. Division by zero gives
// an infinity or NaN rather than an error.
func Eval(expr string, opts ...Option) (float64, error) {
	return EvalWith[float64](expr, Float64{}, opts...)
}

// EvalBig evaluates an expression with *big.Float arithmetic at the given
// precision in bits. If prec is 0, the precision is 64.
func EvalBig(expr string, prec uint, opts ...Option) (*big.Float, error) {
	return EvalWith[*big.Float](expr, BigFloat{Prec: prec}, opts...)
}

// sum parses a sequence of additions and subtractions.
func (ev *evaluator[T]) sum() (T, error) {
	r, err := ev.mult()
	if err != nil {
		return r, err
	}
	for {
		var f func(x, y T) T
		op, col := ev.tk.kind, ev.tk.start
		switch op {
		case TokenPlus:
			f = ev.num.Add
		case TokenMinus:
			f = ev.num.Sub
		default:
			return r, nil
		}
		if err := ev.tk.advance(); err != nil {
			return r, err
		}
		y, err := ev.mult()
		if err != nil {
			return r, err
		}
		x := r
		r, err = ev.guard(op, col, func() T { return f(x, y) })
		if err != nil {
			return r, err
		}
	}
}

// mult parses a sequence of multiplications and divisions.
func (ev *evaluator[T]) mult() (T, error) {
	r, err := ev.tightest()
	if err != nil {
		return r, err
	}
	for {
		var f func(x, y T) T
		op, col := ev.tk.kind, ev.tk.start
		switch op {
		case TokenStar:
			f = ev.num.Mul
		case TokenSlash:
			f = ev.num.Quo
		default:
			return r, nil
		}
		if err := ev.tk.advance(); err != nil {
			return r, err
		}
		y, err := ev.tightest()
		if err != nil {
			return r, err
		}
		x := r
		r, err = ev.guard(op, col, func() T { return f(x, y) })
		if err != nil {
			return r, err
		}
	}
}

// tightest parses a bracketed expression, a function call, a constant, a
// number, or a negation.
func (ev *evaluator[T]) tightest() (T, error) {
	var zero T
	tk := &ev.tk
	switch op := tk.kind; op {
	case TokenLeftParen:
		return ev.brackets()
	case TokenSin, TokenCos, TokenExp:
		col := tk.start
		if err := tk.advance(); err != nil {
			return zero, err
		}
		x, err := ev.brackets()
		if err != nil {
			return zero, err
		}
		return ev.guard(op, col, func() T { return ev.call(op, x) })
	case TokenPi:
		if err := tk.advance(); err != nil {
			return zero, err
		}
		return ev.num.Pi(), nil
	case TokenE:
		if err := tk.advance(); err != nil {
			return zero, err
		}
		return ev.num.E(), nil
	case TokenNumber:
		// The literal has to be converted before advancing replaces it.
		r := ev.num.Literal(tk.text, tk.num)
		if err := tk.advance(); err != nil {
			return zero, err
		}
		return r, nil
	case TokenMinus:
		if err := tk.advance(); err != nil {
			return zero, err
		}
		// Negation takes a whole product, not just the next term.
		x, err := ev.mult()
		if err != nil {
			return zero, err
		}
		return ev.num.Neg(x), nil
	default:
		return zero, tk.unexpected(TokenNone)
	}
}

// brackets parses a parenthesized sum, used both for grouping and for
// function arguments.
func (ev *evaluator[T]) brackets() (T, error) {
	var zero T
	if err := ev.tk.expect(TokenLeftParen); err != nil {
		return zero, err
	}
	if err := ev.tk.advance(); err != nil {
		return zero, err
	}
	r, err := ev.sum()
	if err != nil {
		return zero, err
	}
	if err := ev.tk.expect(TokenRightParen); err != nil {
		return zero, err
	}
	if err := ev.tk.advance(); err != nil {
		return zero, err
	}
	return r, nil
}

// call applies the function named by a keyword token.
func (ev *evaluator[T]) call(fn TokenKind, x T) T {
	switch fn {
	case TokenSin:
		return ev.num.Sin(x)
	case TokenCos:
		return ev.num.Cos(x)
	case TokenExp:
		return ev.num.Exp(x)
	default:
		panic("calc: call of non-function token " + fn.String())
	}
}

// guard runs an operation and converts a big.ErrNaN panic into a
// *DomainError at col.
func (ev *evaluator[T]) guard(op TokenKind, col int, f func() T) (r T, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		nan, ok := p.(big.ErrNaN)
		if !ok {
			panic(p)
		}
		err = &DomainError{Col: col, Op: op, Err: nan}
	}()
	return f(), nil
}
