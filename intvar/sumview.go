package intvar

import "github.com/katalvlaran/corecp/trail"

// SumView is a read-derived variable A+B, a bounds-consistency mechanism
// rather than an independent domain: its own bounds are always computed
// from A and B, and tightening it back-propagates into A and B exactly the
// way a sum-of-two-interval-variables view narrows its operands.
type SumView struct {
	A, B *Var
}

// NewSumView wraps A and B as a read-derived A+B view.
func NewSumView(a, b *Var) *SumView { return &SumView{A: a, B: b} }

// Min returns the current minimum possible value of A+B.
func (s *SumView) Min() int64 { return s.A.Min() + s.B.Min() }

// Max returns the current maximum possible value of A+B.
func (s *SumView) Max() int64 { return s.A.Max() + s.B.Max() }

// TightenGE enforces A+B >= val by raising A's lower bound whenever B is
// already at its ceiling, and symmetrically for B — the same filterOnGeq
// step a sum-of-two-variables interval view performs after its own lower
// bound moves.
func (s *SumView) TightenGE(val int64, cause trail.Cause) error {
	if s.Min() >= val {
		return nil
	}
	if err := s.A.UpdateLB(val-s.B.Max(), cause); err != nil {
		return err
	}
	if err := s.B.UpdateLB(val-s.A.Max(), cause); err != nil {
		return err
	}
	return nil
}

// TightenLE enforces A+B <= val, the mirror of TightenGE.
func (s *SumView) TightenLE(val int64, cause trail.Cause) error {
	if s.Max() <= val {
		return nil
	}
	if err := s.A.UpdateUB(val-s.B.Min(), cause); err != nil {
		return err
	}
	if err := s.B.UpdateUB(val-s.A.Min(), cause); err != nil {
		return err
	}
	return nil
}
