// Package diffmatchpatch offers robust algorithms to perform the operations
// required for synchronizing plain text.
package diffmatchpatch

import (
	"errors"
	"time"
)

// Sentinel errors returned by the patch engine. They are wrapped with
// fmt.Errorf's %w verb so callers can test with errors.Is.
var (
	// ErrInvalidArguments is returned by PatchMake when its arguments don't
	// match one of the recognized calling conventions.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrInvalidPatch is returned by PatchFromText when a line is neither a
	// valid patch header nor a valid body line.
	ErrInvalidPatch = errors.New("invalid patch string")
	// ErrIllegalEscape is returned by PatchFromText when a body line contains
	// a malformed percent-escape sequence.
	ErrIllegalEscape = errors.New("illegal escape")
)

// Config is the configuration for diff-match-patch operations.
type Config struct {
	// DiffTimeout is how long to map a diff before giving up (0 for
	// infinity).
	DiffTimeout time.Duration
	// Cost of an empty edit operation in terms of edit characters.
	DiffEditCost int

	// WillContinue, when set, is polled at the top of each outer bisection
	// iteration. Returning false abandons the current subproblem in favor of
	// the conservative delete/insert fallback. Checked in addition to, not
	// instead of, DiffTimeout.
	WillContinue func() bool

	// How far to search for a match (0 = exact location, 1000+ = broad match).
	// A match this many characters away from the expected location will add
	// 1.0 to the score (0.0 is a perfect match).
	MatchDistance int
	// The number of bits in an int.
	MatchMaxBits int
	// At what point is no match declared (0.0 = perfection, 1.0 = very loose).
	MatchThreshold float64

	// When deleting a large block of text (over MatchMaxBits characters), how close do
	// the contents have to be to match the expected contents. (0.0 =
	// perfection, 1.0 = very loose).  Note that MatchThreshold controls how
	// closely the end points of a delete need to match.
	PatchDeleteThreshold float64
	// Chunk size for context length.
	PatchMargin int
}

// NewDefaultConfig creates a new configuration with default parameters.
func NewDefaultConfig() *Config {
	return &Config{
		DiffTimeout:          time.Second,
		DiffEditCost:         4,
		MatchThreshold:       0.5,
		MatchDistance:        1000,
		MatchMaxBits:         32,
		PatchDeleteThreshold: 0.5,
		PatchMargin:          4,
	}
}
