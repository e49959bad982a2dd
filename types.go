package ndjsonv

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// BatchPolicy controls what a batch does when one file fails with an I/O
// error.
type BatchPolicy int

const (
	FailFast   BatchPolicy = iota // Abort the batch and return the failure.
	BestEffort                    // Record the failure and continue.
)

func (p BatchPolicy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case BestEffort:
		return "best-effort"
	default:
		return fmt.Sprintf("BatchPolicy(%d)", int(p))
	}
}

// ParseBatchPolicy parses "fail-fast" or "best-effort".
func ParseBatchPolicy(s string) (BatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-fast", "failfast":
		return FailFast, nil
	case "best-effort", "besteffort":
		return BestEffort, nil
	}
	return 0, configErrorf("policy", s, "want fail-fast or best-effort")
}

func (p *BatchPolicy) UnmarshalText(b []byte) error {
	v, err := ParseBatchPolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p BatchPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// BlankLinePolicy decides how empty or whitespace-only lines are treated.
type BlankLinePolicy int

const (
	BlankInvalid BlankLinePolicy = iota // Classify as INVALID and record an error.
	BlankSkip                           // Ignore: no output, no error.
)

func (p BlankLinePolicy) String() string {
	switch p {
	case BlankInvalid:
		return "invalid"
	case BlankSkip:
		return "skip"
	default:
		return fmt.Sprintf("BlankLinePolicy(%d)", int(p))
	}
}

// ParseBlankLinePolicy parses "invalid" or "skip".
func ParseBlankLinePolicy(s string) (BlankLinePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "invalid":
		return BlankInvalid, nil
	case "skip":
		return BlankSkip, nil
	}
	return 0, configErrorf("blank_lines", s, "want invalid or skip")
}

func (p *BlankLinePolicy) UnmarshalText(b []byte) error {
	v, err := ParseBlankLinePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p BlankLinePolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Limits are optional strictness checks applied after the backend accepted
// a line. They are evaluated the same way for every backend. Zero values
// disable each check.
type Limits struct {
	MaxLineBytes        int  `yaml:"max_line_bytes"`
	MaxDepth            int  `yaml:"max_depth"`
	RejectDuplicateKeys bool `yaml:"reject_duplicate_keys"`
}

// NestingLimit caps array and object nesting for every backend, whatever
// Limits.MaxDepth says. Backends disagree past their own recursion limits.
const NestingLimit = 1000

// Options bundles validation options. The zero value is the reference
// contract: blank lines invalid, fail-fast, sequential, no limits.
type Options struct {
	BlankLines BlankLinePolicy
	Policy     BatchPolicy
	Limits     Limits
	// Workers > 1 cleans that many files concurrently.
	Workers int
	Logger  *zap.Logger
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.BlankLines != BlankInvalid && o.BlankLines != BlankSkip {
		return configErrorf("blank_lines", o.BlankLines.String(), "unknown policy")
	}
	if o.Policy != FailFast && o.Policy != BestEffort {
		return configErrorf("policy", o.Policy.String(), "unknown policy")
	}
	if o.Workers < 0 {
		return configErrorf("workers", fmt.Sprint(o.Workers), "must not be negative")
	}
	if o.Limits.MaxLineBytes < 0 {
		return configErrorf("max_line_bytes", fmt.Sprint(o.Limits.MaxLineBytes), "must not be negative")
	}
	if o.Limits.MaxDepth < 0 {
		return configErrorf("max_depth", fmt.Sprint(o.Limits.MaxDepth), "must not be negative")
	}
	return nil
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
