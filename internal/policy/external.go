package policy

// External is a pass-through policy for an outside controller (typically a
// learning algorithm driving the engine through its Step contract). It does
// no computation of its own: the caller supplies the next action before each
// decision point.
type External struct {
	cadence Cadence
	next    Action
}

// NewExternal creates an externally driven policy. Trainers usually decide
// every step; CadenceAnnual is supported for annual controllers.
func NewExternal(cadence Cadence) *External {
	return &External{cadence: cadence}
}

// Supply stores the action to hand back at the next decision point. The
// action is validated by the engine, not here.
func (p *External) Supply(action Action) {
	p.next = action
}

func (p *External) Decide(Observation) (Action, error) {
	if !p.next.Valid() {
		return 0, ErrInvalidAction
	}
	return p.next, nil
}

func (p *External) Cadence() Cadence {
	return p.cadence
}

func (p *External) Name() string {
	return "external"
}
