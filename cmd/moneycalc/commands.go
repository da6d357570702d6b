package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/ledgerkit/money"
	"github.com/ledgerkit/money/internal/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// command is a single moneycalc operation.
type command struct {
	usage   string
	minArgs int
	maxArgs int
	exec    func(env *env, args []string) (string, error)
}

// env carries what every command needs.
type env struct {
	cfg *config.Config
}

var commands = map[string]command{
	"add":   {"a b            exact sum", 2, 2, binary(money.Money.Add)},
	"sub":   {"a b            exact difference", 2, 2, binary(money.Money.Sub)},
	"mul":   {"a factor       product, rounded", 2, 2, execMul},
	"quo":   {"a divisor      quotient, rounded", 2, 2, execQuo},
	"rat":   {"a b scale      exact ratio with scale digits", 3, 3, execRat},
	"round": {"curr value [mode]  decimal rounded to currency scale", 2, 3, execRound},
	"float": {"curr value [mode]  float rounded to currency scale", 2, 3, execFloat},
	"cmp":   {"a b            compare, prints -1, 0 or 1", 2, 2, execCmp},
	"split": {"a parts        split into near-equal parts", 2, 2, execSplit},
	"inc":   {"a              add the minimum increment", 1, 1, unary(money.Money.Incremented)},
	"neg":   {"a              negate", 1, 1, unary(money.Money.Neg)},
	"abs":   {"a              absolute value", 1, 1, unary(money.Money.Abs)},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// run executes the command named by args[0] and writes its result to stdout.
func run(args []string, stdout io.Writer, log *zap.Logger, cfg *config.Config) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given")
	}
	name, params := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if len(params) < cmd.minArgs || len(params) > cmd.maxArgs {
		return fmt.Errorf("usage: %s %s", name, strings.TrimSpace(cmd.usage))
	}

	out, err := cmd.exec(&env{cfg: cfg}, params)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Debug("Evaluated",
		zap.String("command", name),
		zap.Strings("args", params),
		zap.Stringer("rounding", cfg.RoundingMode()),
		zap.String("result", out),
	)
	_, err = fmt.Fprintln(stdout, out)
	return err
}

// parseAmount accepts "USD 10.00" or a bare number in the default currency.
func (e *env) parseAmount(s string) (money.Money, error) {
	if strings.Contains(strings.TrimSpace(s), " ") {
		return money.ParseMoney(s)
	}
	return money.Parse(e.cfg.DefaultCurrency().Code(), s)
}

// mode returns the rounding mode given as an optional argument, falling back
// to the configured one.
func (e *env) mode(args []string, i int) (money.RoundingMode, error) {
	if len(args) <= i {
		return e.cfg.RoundingMode(), nil
	}
	return money.ParseRoundingMode(args[i])
}

func unary(f func(money.Money) money.Money) func(*env, []string) (string, error) {
	return func(e *env, args []string) (string, error) {
		a, err := e.parseAmount(args[0])
		if err != nil {
			return "", err
		}
		return f(a).String(), nil
	}
}

func binary(f func(money.Money, money.Money) (money.Money, error)) func(*env, []string) (string, error) {
	return func(e *env, args []string) (string, error) {
		a, err := e.parseAmount(args[0])
		if err != nil {
			return "", err
		}
		b, err := e.parseAmount(args[1])
		if err != nil {
			return "", err
		}
		c, err := f(a, b)
		if err != nil {
			return "", err
		}
		return c.String(), nil
	}
}

func execMul(e *env, args []string) (string, error) {
	a, err := e.parseAmount(args[0])
	if err != nil {
		return "", err
	}
	f, err := decimal.NewFromString(args[1])
	if err != nil {
		return "", fmt.Errorf("parsing factor: %w", err)
	}
	c, err := a.MulRounded(f, e.cfg.RoundingMode())
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

func execQuo(e *env, args []string) (string, error) {
	a, err := e.parseAmount(args[0])
	if err != nil {
		return "", err
	}
	d, err := decimal.NewFromString(args[1])
	if err != nil {
		return "", fmt.Errorf("parsing divisor: %w", err)
	}
	c, err := a.QuoRounded(d, e.cfg.RoundingMode())
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

func execRat(e *env, args []string) (string, error) {
	a, err := e.parseAmount(args[0])
	if err != nil {
		return "", err
	}
	b, err := e.parseAmount(args[1])
	if err != nil {
		return "", err
	}
	scale, err := strconv.Atoi(args[2])
	if err != nil || scale < 0 {
		return "", fmt.Errorf("invalid scale %q", args[2])
	}
	r, err := a.Rat(b, scale)
	if err != nil {
		return "", err
	}
	return r.StringFixed(int32(scale)), nil
}

func execRound(e *env, args []string) (string, error) {
	curr, err := money.ParseCurr(args[0])
	if err != nil {
		return "", err
	}
	d, err := decimal.NewFromString(args[1])
	if err != nil {
		return "", fmt.Errorf("parsing value: %w", err)
	}
	mode, err := e.mode(args, 2)
	if err != nil {
		return "", err
	}
	m, err := money.NewRounded(d, curr, mode)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

func execFloat(e *env, args []string) (string, error) {
	curr, err := money.ParseCurr(args[0])
	if err != nil {
		return "", err
	}
	f, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "", fmt.Errorf("parsing value: %w", err)
	}
	mode, err := e.mode(args, 2)
	if err != nil {
		return "", err
	}
	m, err := money.NewFromFloat64Rounded(f, curr, mode)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

func execCmp(e *env, args []string) (string, error) {
	a, err := e.parseAmount(args[0])
	if err != nil {
		return "", err
	}
	b, err := e.parseAmount(args[1])
	if err != nil {
		return "", err
	}
	c, err := a.Cmp(b)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(c), nil
}

func execSplit(e *env, args []string) (string, error) {
	a, err := e.parseAmount(args[0])
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return "", fmt.Errorf("invalid number of parts %q", args[1])
	}
	parts, err := a.Split(n)
	if err != nil {
		return "", err
	}
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = p.String()
	}
	return strings.Join(lines, "\n"), nil
}
