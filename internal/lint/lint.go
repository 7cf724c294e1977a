// Package lint applies descriptor hygiene rules that go beyond the hard
// load-time invariants: a check step runs these and flags findings such as
// a pin bumped without the package version.
package lint

import (
	"fmt"

	"github.com/open-edge-platform/pinwrap/internal/descriptor"
	"github.com/open-edge-platform/pinwrap/internal/utils/slice"
)

// Severity classifies a finding.
type Severity string

const (
	SevError   Severity = "error"
	SevWarning Severity = "warning"
	SevInfo    Severity = "info"
)

// Finding is one rule violation on a descriptor record.
type Finding struct {
	Rule     string
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s]: %s", f.Severity, f.Rule, f.Message)
}

// wrapper package naming conventions accepted by the name-suffix rule
var wrapperSuffixes = []string{"_pre_commit_package", "-wrapper"}

// Run applies every rule to the record and returns the findings in rule
// order. An empty result means the descriptor is clean.
func Run(rec *descriptor.Record) []Finding {
	var findings []Finding

	if len(rec.Requires) == 0 {
		findings = append(findings, Finding{
			Rule:     "single-pin",
			Severity: SevError,
			Message:  "descriptor pins no dependency; a wrapper package must pin exactly one tool",
		})
		return append(findings, nameSuffixFinding(rec)...)
	}

	if len(rec.Requires) > 1 {
		findings = append(findings, Finding{
			Rule:     "single-pin",
			Severity: SevWarning,
			Message: fmt.Sprintf("descriptor pins %d dependencies; a wrapper package conventionally pins one",
				len(rec.Requires)),
		})
	}

	for _, dep := range rec.Requires {
		if !descriptor.IsExactVersion(dep.Version) {
			findings = append(findings, Finding{
				Rule:     "exact-pin",
				Severity: SevError,
				Message:  fmt.Sprintf("dependency %s uses version %q; only exact pins are allowed", dep.Name, dep.Version),
			})
		}
	}

	if rec.Version != rec.Requires[0].Version {
		findings = append(findings, Finding{
			Rule:     "co-versioning",
			Severity: SevError,
			Message: fmt.Sprintf("package version %s and %s pin %s have drifted apart; update both together",
				rec.Version, rec.Requires[0].Name, rec.Requires[0].Version),
		})
	}

	if len(rec.Packages) > 0 {
		findings = append(findings, Finding{
			Rule:     "metadata-only",
			Severity: SevWarning,
			Message: fmt.Sprintf("descriptor lists %d sub-packages; a wrapper package distributes metadata only",
				len(rec.Packages)),
		})
	}

	return append(findings, nameSuffixFinding(rec)...)
}

func nameSuffixFinding(rec *descriptor.Record) []Finding {
	if slice.HasSuffixAny(rec.Name, wrapperSuffixes) {
		return nil
	}
	return []Finding{{
		Rule:     "name-suffix",
		Severity: SevInfo,
		Message:  fmt.Sprintf("name %s does not follow the wrapper naming convention (*_pre_commit_package or *-wrapper)", rec.Name),
	}}
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SevError {
			return true
		}
	}
	return false
}
