package batch

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBad = errors.New("bad expression")

// echo returns its input, except that "bad" fails.
func echo(calls *atomic.Int64) Func {
	return func(expr string) (string, error) {
		calls.Add(1)
		if expr == "bad" {
			return "", errBad
		}
		return expr, nil
	}
}

func outs(results []Result) []string {
	v := make([]string, len(results))
	for i, r := range results {
		v[i] = r.Out
	}
	return v
}

func TestRunOrder(t *testing.T) {
	exprs := make([]string, 100)
	for i := range exprs {
		exprs[i] = strconv.Itoa(i)
	}
	for _, jobs := range []int{0, 1, 4, 100} {
		t.Run(strconv.Itoa(jobs), func(t *testing.T) {
			var calls atomic.Int64
			results, err := Run(context.Background(), exprs, echo(&calls), Options{Jobs: jobs})
			require.NoError(t, err)
			assert.Equal(t, exprs, outs(results))
			for i, r := range results {
				assert.Equal(t, i, r.Index)
				assert.Equal(t, exprs[i], r.Expr)
			}
			assert.EqualValues(t, len(exprs), calls.Load())
		})
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	exprs := []string{"a", "b", "bad", "c", "bad", "d"}
	for _, jobs := range []int{1, 3, 0} {
		t.Run(strconv.Itoa(jobs), func(t *testing.T) {
			var calls atomic.Int64
			results, err := Run(context.Background(), exprs, echo(&calls), Options{Jobs: jobs})
			require.Error(t, err)
			assert.ErrorIs(t, err, errBad)
			assert.Contains(t, err.Error(), `"bad"`)
			assert.Equal(t, []string{"a", "b"}, outs(results))
			assert.GreaterOrEqual(t, calls.Load(), int64(3))
		})
	}
}

func TestRunSequentialSkipsRest(t *testing.T) {
	exprs := []string{"bad", "a", "b", "c"}
	var calls atomic.Int64
	results, err := Run(context.Background(), exprs, echo(&calls), Options{Jobs: 1})
	require.ErrorIs(t, err, errBad)
	assert.Empty(t, results)
	// The loop may schedule one more expression before it sees the failure,
	// but that one must skip evaluation.
	assert.EqualValues(t, 1, calls.Load())
}

func TestRunKeepGoing(t *testing.T) {
	exprs := []string{"a", "bad", "b", "bad", "c"}
	var calls atomic.Int64
	results, err := Run(context.Background(), exprs, echo(&calls), Options{Jobs: 2, KeepGoing: true})
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.ErrorIs(t, err, errBad)
	require.Len(t, results, len(exprs))
	assert.Equal(t, []string{"a", "", "b", "", "c"}, outs(results))
	assert.ErrorIs(t, results[1].Err, errBad)
	assert.NoError(t, results[2].Err)
	assert.EqualValues(t, len(exprs), calls.Load())
}

func TestRunKeepGoingNoErrors(t *testing.T) {
	var calls atomic.Int64
	results, err := Run(context.Background(), []string{"x", "y"}, echo(&calls), Options{KeepGoing: true})
	assert.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, outs(results))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int64
	results, err := Run(ctx, []string{"a", "b"}, echo(&calls), Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
	assert.EqualValues(t, 0, calls.Load())
}

func TestRunEmpty(t *testing.T) {
	var calls atomic.Int64
	results, err := Run(context.Background(), nil, echo(&calls), Options{})
	assert.NoError(t, err)
	assert.Empty(t, results)
}
