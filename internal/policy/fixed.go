package policy

import "fmt"

// BuyAndHold sets a fixed allocation once at episode start. Because it is
// never consulted again, the realized equity fraction drifts with relative
// stock/bond performance over the horizon.
type BuyAndHold struct {
	target Action
}

// NewBuyAndHold creates a buy-and-hold policy for the given target equity
// fraction (must be a 5% grid step).
func NewBuyAndHold(targetFraction float64) (*BuyAndHold, error) {
	action, err := ActionFromFraction(targetFraction)
	if err != nil {
		return nil, fmt.Errorf("buy-and-hold target: %w", err)
	}
	return &BuyAndHold{target: action}, nil
}

func (p *BuyAndHold) Decide(Observation) (Action, error) {
	return p.target, nil
}

func (p *BuyAndHold) Cadence() Cadence {
	return CadenceOnReset
}

func (p *BuyAndHold) Name() string {
	return fmt.Sprintf("buy-and-hold %s", p.target)
}

// Rebalance re-asserts the same target allocation at every annual decision
// point. The target never changes, but re-asserting it undoes the drift that
// differential growth introduces between decisions.
type Rebalance struct {
	target Action
}

// NewRebalance creates an annually rebalanced fixed-allocation policy.
func NewRebalance(targetFraction float64) (*Rebalance, error) {
	action, err := ActionFromFraction(targetFraction)
	if err != nil {
		return nil, fmt.Errorf("rebalance target: %w", err)
	}
	return &Rebalance{target: action}, nil
}

func (p *Rebalance) Decide(Observation) (Action, error) {
	return p.target, nil
}

func (p *Rebalance) Cadence() Cadence {
	return CadenceAnnual
}

func (p *Rebalance) Name() string {
	return fmt.Sprintf("rebalance %s", p.target)
}
