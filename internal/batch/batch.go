// Package batch evaluates many expressions concurrently while reporting
// results in input order.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Func evaluates one expression and formats its result.
type Func func(expr string) (string, error)

// Options configures Run.
type Options struct {
	// Jobs is the maximum number of expressions evaluated at once. Zero or
	// less means no limit.
	Jobs int
	// KeepGoing evaluates every expression even after one fails.
	KeepGoing bool
	// Log receives a debug record for each evaluation. It may be nil.
	Log *slog.Logger
}

// Result is the outcome of evaluating one expression.
type Result struct {
	// Index is the position of the expression in the input.
	Index int
	Expr  string
	// Out is the formatted result. It is empty if Err is not nil.
	Out string
	Err error
}

// Run evaluates exprs with fn.
//
// Without KeepGoing, Run behaves as though the expressions were evaluated one
// by one until the first failure: the results are those before the first
// failing expression, and the error is that failure. Expressions after a known
// failure are not evaluated.
//
// With KeepGoing, the results include every expression, and the error, if
// any, is a *multierror.Error holding each failure in input order.
//
// If ctx is canceled, Run returns the context's error and no results.
func Run(ctx context.Context, exprs []string, fn Func, opts Options) ([]Result, error) {
	results := make([]Result, len(exprs))
	// first is the lowest index that has failed so far.
	var first atomic.Int64
	first.Store(int64(len(exprs)))
	var g errgroup.Group
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, expr := range exprs {
		if !opts.KeepGoing && int64(i) > first.Load() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !opts.KeepGoing && int64(i) > first.Load() {
				return nil
			}
			out, err := fn(expr)
			results[i] = Result{Index: i, Expr: expr, Out: out, Err: err}
			if opts.Log != nil {
				opts.Log.Debug("evaluated", slog.Int("index", i), slog.String("expr", expr), slog.String("out", out), slog.Any("err", err))
			}
			if err != nil {
				lower(&first, int64(i))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !opts.KeepGoing {
		k := int(first.Load())
		if k < len(results) {
			r := results[k]
			return results[:k], fmt.Errorf("evaluating %q: %w", r.Expr, r.Err)
		}
		return results, nil
	}
	var errs *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			errs = multierror.Append(errs, fmt.Errorf("evaluating %q: %w", r.Expr, r.Err))
		}
	}
	return results, errs.ErrorOrNil()
}

// lower sets v to n if n is less than v.
func lower(v *atomic.Int64, n int64) {
	for {
		old := v.Load()
		if n >= old || v.CompareAndSwap(old, n) {
			return
		}
	}
}
