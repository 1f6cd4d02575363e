package oracle

import (
	"context"
	"fmt"
	"strings"
)

// Verdict is the checker's answer for one candidate expression. Raw keeps the
// checker's trimmed output verbatim for the audit trail; Accepted is the
// decoded accept/reject decision.
type Verdict struct {
	Raw      string
	Accepted bool
}

// Validator decides whether a candidate expression solves a target. The
// mechanism (external process, library, remote service) is up to the
// implementation; callers only depend on the Verdict-or-error contract and
// the implementation's latency bound.
type Validator interface {
	Check(ctx context.Context, target, candidate string) (Verdict, error)
}

// Solver produces some valid solution expression for a target.
type Solver interface {
	Solve(ctx context.Context, target string) (string, error)
}

// Error reports a failed oracle invocation: spawn failure, non-zero exit,
// empty output, or timeout. It never encodes a reject verdict — rejection is
// a successful invocation.
type Error struct {
	Op      string // "check" or "solve"
	Timeout bool
	Detail  string
}

func (e *Error) Error() string {
	if e.Timeout {
		return fmt.Sprintf("oracle %s timed out", e.Op)
	}
	return fmt.Sprintf("oracle %s failed: %s", e.Op, e.Detail)
}

// Accepts decodes a checker's output. The checker's format is not formally
// specified upstream, so matching is deliberately lenient: output is trimmed
// and upper-cased, and counts as acceptance when it contains VALID or CORRECT
// or equals 1 or OK. Negated forms (INVALID, INCORRECT, NOT VALID) are
// rejections even though they contain the accept words.
func Accepts(raw string) bool {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if strings.Contains(v, "INVALID") || strings.Contains(v, "INCORRECT") || strings.Contains(v, "NOT") {
		return false
	}
	return strings.Contains(v, "VALID") || strings.Contains(v, "CORRECT") || v == "1" || v == "OK"
}
