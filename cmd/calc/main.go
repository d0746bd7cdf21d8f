package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/batch"
	"github.com/zephyrtronium/calc/internal/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "calc",
		Usage:     "evaluate arithmetic expressions",
		ArgsUsage: "[expression ...]",
		Description: "Each argument is one expression. With no arguments, or with --in, " +
			"expressions are read one per line. Results are printed in order, one per line.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "in",
				Usage:   "read expressions from `FILE`, one per line; - is stdin (default stdin if no args given)",
				EnvVars: []string{"CALC_IN"},
			},
			&cli.UintFlag{
				Name:    "prec",
				Aliases: []string{"p"},
				Usage:   "precision of calculations in bits; 0 computes with float64",
				EnvVars: []string{"CALC_PREC"},
			},
			&cli.IntFlag{
				Name:    "digits",
				Aliases: []string{"d"},
				Usage:   "digits after the decimal point in results",
				Value:   calc.DefaultDigits,
				EnvVars: []string{"CALC_DIGITS"},
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "maximum number of expressions to evaluate at once; 0 is unlimited",
				Value:   1,
				EnvVars: []string{"CALC_JOBS"},
			},
			&cli.BoolFlag{
				Name:    "keep-going",
				Aliases: []string{"k"},
				Usage:   "continue with the remaining expressions after one fails",
				EnvVars: []string{"CALC_KEEP_GOING"},
			},
			&cli.BoolFlag{
				Name:    "lenient",
				Usage:   "ignore anything after the first complete expression",
				EnvVars: []string{"CALC_LENIENT"},
			},
			&cli.BoolFlag{
				Name:  "echo",
				Usage: "print each normalized expression before its result",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "minimum `LEVEL` of log records (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"CALC_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "also write JSON log records to `FILE`",
				EnvVars: []string{"CALC_LOG_FILE"},
			},
		},
		HideHelpCommand: true,
		Action:          run,
	}
}

func run(c *cli.Context) error {
	level, err := logging.ParseLevel(c.String("log-level"))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	var logfile io.Writer
	if name := c.String("log-file"); name != "" {
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logfile = f
	}
	log := logging.New(c.App.ErrWriter, logfile, level)

	digits := c.Int("digits")
	if digits < 0 {
		err := fmt.Errorf("digits (%d) must not be negative", digits)
		log.Error("bad flag", slog.Any("err", err))
		return err
	}

	exprs, err := inputs(c)
	if err != nil {
		log.Error("reading input", slog.Any("err", err))
		return err
	}

	opts := []calc.Option{calc.WithLogger(log)}
	if c.Bool("lenient") {
		opts = append(opts, calc.Lenient())
	}
	results, err := batch.Run(c.Context, exprs, evaluator(c.Uint("prec"), digits, opts), batch.Options{
		Jobs:      c.Int("jobs"),
		KeepGoing: c.Bool("keep-going"),
		Log:       log,
	})
	echo := c.Bool("echo")
	w := c.App.Writer
	for _, r := range results {
		if r.Err != nil {
			log.Error("evaluation failed", slog.String("expr", r.Expr), slog.Any("err", r.Err))
			continue
		}
		if echo {
			fmt.Fprintf(w, "%s : %s\n", calc.Normalize(r.Expr), r.Out)
			continue
		}
		fmt.Fprintln(w, r.Out)
	}
	if err != nil && !c.Bool("keep-going") {
		log.Error("evaluation failed", slog.Any("err", err))
	}
	return err
}

// evaluator returns a batch.Func that evaluates with float64 if prec is 0 and
// with *big.Float otherwise.
func evaluator(prec uint, digits int, opts []calc.Option) batch.Func {
	if prec == 0 {
		return func(expr string) (string, error) {
			r, err := calc.Eval(expr, opts...)
			if err != nil {
				return "", err
			}
			return calc.Format(r, digits), nil
		}
	}
	return func(expr string) (string, error) {
		r, err := calc.EvalBig(expr, prec, opts...)
		if err != nil {
			return "", err
		}
		return calc.FormatBig(r, digits), nil
	}
}

// inputs collects expressions from the input file, if any, then from the
// arguments.
func inputs(c *cli.Context) ([]string, error) {
	var exprs []string
	f, err := infile(c.String("in"), c.NArg() == 0, c.App.Reader)
	if err != nil {
		return nil, err
	}
	if f != nil {
		if cl, ok := f.(io.Closer); ok && f != c.App.Reader {
			defer cl.Close()
		}
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := sc.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			exprs = append(exprs, line)
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	}
	exprs = append(exprs, c.Args().Slice()...)
	if len(exprs) == 0 {
		return nil, errors.New("no expressions")
	}
	return exprs, nil
}

func infile(inname string, std bool, stdin io.Reader) (io.Reader, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return stdin, nil
	}
	return nil, nil
}
