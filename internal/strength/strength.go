// Package strength provides an advisory passphrase strength score, surfaced
// by close but never used to block it — a weak passphrase is still a valid
// one.
package strength

import "github.com/Picocrypt/zxcvbn-go"

// Score is zxcvbn's 0 (weakest) to 4 (strongest) strength estimate.
type Score int

const (
	VeryWeak Score = iota
	Weak
	Fair
	Strong
	VeryStrong
)

// Result is the advisory outcome returned alongside close.
type Result struct {
	Score Score
}

// Check scores passphrase with zxcvbn. It never returns an error: a
// strength estimate is advisory, so there is no failure mode that should
// ever abort the caller's operation.
func Check(passphrase string) Result {
	return Result{Score: Score(zxcvbn.PasswordStrength(passphrase, nil).Score)}
}

// String renders the score the way a CLI would display it.
func (s Score) String() string {
	switch s {
	case VeryWeak:
		return "very weak"
	case Weak:
		return "weak"
	case Fair:
		return "fair"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very strong"
	default:
		return "unknown"
	}
}
