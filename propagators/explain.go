package propagators

import (
	"github.com/katalvlaran/corecp/explain"
	"github.com/katalvlaran/corecp/trail"
)

// recorder is embedded by every propagator in this package to give it an
// opt-in explanation sink. The zero value records nothing — explaining
// contradictions costs nothing unless a caller installs a recorder via
// SetRecorder (spec.md §10's why-hook contract).
type recorder struct {
	rec explain.Recorder
}

// SetRecorder installs r as this propagator's explanation sink.
func (p *recorder) SetRecorder(r explain.Recorder) { p.rec = r }

// fail builds a *trail.Contradiction and, if a recorder is installed,
// records the fact that justified it before returning.
func (p *recorder) fail(varName string, reason trail.Reason, cause trail.Cause) error {
	if p.rec != nil {
		p.rec.Record(explain.Fact{Var: varName, Reason: reason, Cause: cause})
	}
	return trail.Fail(varName, reason, cause)
}
