package creal

// DefaultDivisionLimit is the binary precision below which Inverse declares
// its operand indistinguishable from zero. SetDivisionLimit accepts any
// deeper (more negative) limit for callers that need to divide by smaller
// denominators.
const DefaultDivisionLimit = -1024

// minDivisionLimit is the largest (least negative) division limit a caller
// may configure; the REPL's "set division limit" command
// clamps to this.
const minDivisionLimit = -1024

// Factory holds the process-wide constants (π, e, 1/e) that must be shared
// across every evaluation so their approximation caches are reused instead
// of recomputed per expression.
type Factory struct {
	pi   Node
	e    Node
	invE Node
}

func newFactory() *Factory {
	e := newENode()
	return &Factory{
		pi:   newPiNode(),
		e:    e,
		invE: NewInverse(e),
	}
}

// Pi returns the shared singleton node for π.
func (f *Factory) Pi() Node { return f.pi }

// E returns the shared singleton node for e.
func (f *Factory) E() Node { return f.e }

// InvE returns the shared singleton node for 1/e.
func (f *Factory) InvE() Node { return f.invE }

// Settings is the evaluation-settings record threaded through every
// Evaluate/Msd call: the division limit, the multithreading toggle, and the
// constants factory. Cancellation itself travels separately, as a
// context.Context, per Go convention rather than as a settings field.
type Settings struct {
	DivisionLimit     int
	UseMultithreading bool
	factory           *Factory
}

// NewSettings returns a Settings record with the default division limit and
// a fresh constants Factory.
func NewSettings() *Settings {
	return &Settings{
		DivisionLimit: DefaultDivisionLimit,
		factory:       newFactory(),
	}
}

// SetDivisionLimit sets s's division limit, clamping to minDivisionLimit,
// and returns s. Values deeper than the default are accepted as-is.
func (s *Settings) SetDivisionLimit(p int) *Settings {
	if p > minDivisionLimit {
		p = minDivisionLimit
	}
	s.DivisionLimit = p
	return s
}

// SetMultithreading toggles concurrent operand evaluation and returns s.
func (s *Settings) SetMultithreading(b bool) *Settings {
	s.UseMultithreading = b
	return s
}

// Factory returns s's constants factory.
func (s *Settings) Factory() *Factory { return s.factory }

// Pi returns the shared computable-real node for π, as a convenience over
// s.Factory().Pi().
func (s *Settings) Pi() Node { return s.factory.Pi() }

// E returns the shared computable-real node for e.
func (s *Settings) E() Node { return s.factory.E() }
