// Command creal is a line-oriented REPL: it reads
// expressions from stdin, evaluates them against the creal engine, and
// prints the rendered decimal result with a two-space indent. Flags set the
// initial precision/timeout/division limit; "set precision N", "set timeout
// N" and "set division limit N" change them mid-session.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	creal "github.com/creal-go/creal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var precision int
	var timeoutMs int
	var divisionLimit int
	var multithreaded bool

	cmd := &cobra.Command{
		Use:   "creal",
		Short: "Arbitrary-precision computable-real REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.InOrStdin(), cmd.OutOrStdout(), &replState{
				precision:     precision,
				timeoutMs:     timeoutMs,
				divisionLimit: divisionLimit,
				multithreaded: multithreaded,
			})
		},
	}
	cmd.Flags().IntVar(&precision, "precision", 20, "number of fractional decimal digits to print")
	cmd.Flags().IntVar(&timeoutMs, "timeout", -1, "evaluation timeout in milliseconds, -1 for none")
	cmd.Flags().IntVar(&divisionLimit, "division-limit", creal.DefaultDivisionLimit, "binary precision below which a denominator is deemed zero")
	cmd.Flags().BoolVar(&multithreaded, "multithreading", false, "evaluate independent operands concurrently")
	return cmd
}

type replState struct {
	precision     int
	timeoutMs     int
	divisionLimit int
	multithreaded bool
}

func runRepl(in io.Reader, out io.Writer, st *replState) error {
	settings := creal.NewSettings()
	settings.SetDivisionLimit(st.divisionLimit)
	settings.SetMultithreading(st.multithreaded)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if handled, msg := handleCommand(line, st, settings); handled {
			if msg != "" {
				fmt.Fprintln(out, "  "+msg)
			}
			continue
		}
		result, err := evalLine(settings, line, st)
		if err != nil {
			fmt.Fprintln(out, "  "+describeError(err))
			continue
		}
		fmt.Fprintln(out, "  "+result)
	}
	return scanner.Err()
}

// handleCommand recognizes the three "set ..." REPL verbs. It returns
// handled=true for any line starting with "set" (even a malformed one, so
// the caller reports the error instead of trying to parse it as an
// expression), and false otherwise.
func handleCommand(line string, st *replState, s *creal.Settings) (handled bool, msg string) {
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.EqualFold(fields[0], "set") {
		return false, ""
	}

	switch {
	case len(fields) == 3 && strings.EqualFold(fields[1], "precision"):
		n, err := strconv.Atoi(fields[2])
		if err != nil || n < 0 {
			return true, fmt.Sprintf("invalid precision %q", fields[2])
		}
		st.precision = n
		return true, ""
	case len(fields) == 3 && strings.EqualFold(fields[1], "timeout"):
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return true, fmt.Sprintf("invalid timeout %q", fields[2])
		}
		st.timeoutMs = n
		return true, ""
	case len(fields) == 4 && strings.EqualFold(fields[1], "division") && strings.EqualFold(fields[2], "limit"):
		n, err := strconv.Atoi(fields[3])
		if err != nil {
			return true, fmt.Sprintf("invalid division limit %q", fields[3])
		}
		s.SetDivisionLimit(n)
		return true, ""
	default:
		return true, "Syntax: unrecognized set command"
	}
}

// evalLine parses and evaluates a single expression. A negative timeoutMs
// means "never cancel", so no deadline is attached to ctx in that case.
func evalLine(s *creal.Settings, line string, st *replState) (string, error) {
	node, err := creal.Parse(s, line)
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	if st.timeoutMs >= 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(st.timeoutMs)*time.Millisecond)
		defer cancel()
	}

	return creal.ToString(ctx, s, node, st.precision, false)
}

// describeError maps an error from Parse/Evaluate/ToString to the REPL's
// kind-qualified message format.
func describeError(err error) string {
	switch {
	case creal.IsCancelled(err):
		return "Timeout.."
	case errors.Is(err, creal.ErrDivideByZero):
		return "DivideByZero"
	case errors.Is(err, creal.ErrPrecisionOverflow):
		return "PrecisionOverflow"
	case errors.Is(err, creal.ErrSyntax):
		return "Syntax: " + err.Error()
	}
	var ae *creal.ArithError
	if errors.As(err, &ae) {
		return "Arithmetic: " + ae.Error()
	}
	return "Internal: " + err.Error()
}
