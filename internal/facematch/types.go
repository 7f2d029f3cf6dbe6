// Package facematch identifies the registered person in a captured photo by
// comparing it against every reference photo in the profile store.
package facematch

import "github.com/kozaktomas/face-attendance/internal/profiles"

// Outcome represents how a recognition attempt ended
type Outcome string

const (
	OutcomeMatched     Outcome = "matched"     // A reference scored above threshold
	OutcomeSuppressed  Outcome = "suppressed"  // Matched, but attendance was recorded within the cooldown window
	OutcomeUnknown     Outcome = "unknown"     // No reference scored above threshold
	OutcomeUndecodable Outcome = "undecodable" // The captured photo could not be decoded
)

// Result describes a recognition attempt.
type Result struct {
	Outcome  Outcome
	Identity string           // set for matched and suppressed
	Profile  profiles.Profile // set for matched and suppressed
	Score    float64          // winning score, or the best score seen when unknown
	Compared int              // references scored before stopping
	Skipped  int              // references that could not be read or decoded
	Err      error            // decode error for undecodable photos
}

// Recognized reports whether the photo matched an identity, suppressed or not.
func (r Result) Recognized() bool {
	return r.Outcome == OutcomeMatched || r.Outcome == OutcomeSuppressed
}
