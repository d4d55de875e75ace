package risk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRiskType is returned when the catalog or an evaluator is invoked
// with a risk-type key it does not recognize.
var ErrUnknownRiskType = errors.New("unknown risk type")

// ErrAssessmentInProgress is returned when a second assessment workflow is
// started for a (patient, session) pair that already has an open one.
var ErrAssessmentInProgress = errors.New("an assessment is already in progress for this patient and session")

// IncompleteResponsesError reports required elicitation items missing from a
// response set. An assessor refuses to compute a level rather than default a
// missing answer to false, since a false-negative score is the most dangerous
// failure mode.
type IncompleteResponsesError struct {
	RiskType Type
	Missing  []string
}

func (e *IncompleteResponsesError) Error() string {
	return fmt.Sprintf("incomplete %s responses: missing %s", e.RiskType, strings.Join(e.Missing, ", "))
}

// IsIncompleteResponses reports whether err is an IncompleteResponsesError.
func IsIncompleteResponses(err error) bool {
	var ir *IncompleteResponsesError
	return errors.As(err, &ir)
}

// UnsupportedRiskLevelError is returned when the crisis activator is invoked
// with a level below high. No protocol exists for lower levels; the caller
// must fail fast rather than act on an empty bundle.
type UnsupportedRiskLevelError struct {
	Level Level
}

func (e *UnsupportedRiskLevelError) Error() string {
	return fmt.Sprintf("no crisis protocol defined for risk level %q", e.Level)
}

// IsUnsupportedRiskLevel reports whether err is an UnsupportedRiskLevelError.
func IsUnsupportedRiskLevel(err error) bool {
	var ur *UnsupportedRiskLevelError
	return errors.As(err, &ur)
}
