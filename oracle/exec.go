package oracle

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single oracle invocation. The external process is
// killed when it elapses.
const DefaultTimeout = 5 * time.Second

// ExecOracle runs the checker and solver as external processes. Input goes to
// the process's stdin ("target\ncandidate" for check, "target\n" for solve);
// the verdict or solution is the process's trimmed stdout. A call succeeds
// only when the process exits 0 with non-empty stdout.
type ExecOracle struct {
	CheckerPath string
	SolverPath  string
	Timeout     time.Duration
	Logger      zerolog.Logger
}

// NewExecOracle creates an oracle backed by the given binaries.
func NewExecOracle(checkerPath, solverPath string, logger zerolog.Logger) *ExecOracle {
	return &ExecOracle{
		CheckerPath: checkerPath,
		SolverPath:  solverPath,
		Timeout:     DefaultTimeout,
		Logger:      logger,
	}
}

// Check asks the checker binary for a verdict on candidate.
func (o *ExecOracle) Check(ctx context.Context, target, candidate string) (Verdict, error) {
	out, err := o.run(ctx, "check", o.CheckerPath, target+"\n"+candidate)
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{Raw: out, Accepted: Accepts(out)}, nil
}

// Solve asks the solver binary for a solution expression for target.
func (o *ExecOracle) Solve(ctx context.Context, target string) (string, error) {
	return o.run(ctx, "solve", o.SolverPath, target+"\n")
}

// run spawns the binary, feeds it input, and collects stdout and stderr to
// completion. Every failure mode is folded into *Error; nothing escapes as a
// raw exec error.
func (o *ExecOracle) run(ctx context.Context, op, bin, input string) (string, error) {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin) // #nosec G204
	cmd.Stdin = strings.NewReader(input)
	// Don't let an orphaned child holding the output pipe stall Wait past
	// the deadline.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		o.Logger.Warn().Str("op", op).Dur("elapsed", elapsed).Msg("oracle timed out")
		return "", &Error{Op: op, Timeout: true, Detail: "deadline exceeded"}
	}
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		o.Logger.Warn().Str("op", op).Str("detail", detail).Msg("oracle failed")
		return "", &Error{Op: op, Detail: detail}
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", &Error{Op: op, Detail: "empty output"}
	}

	o.Logger.Debug().Str("op", op).Dur("elapsed", elapsed).Msg("oracle answered")
	return out, nil
}
