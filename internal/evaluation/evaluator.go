package evaluation

import (
	"fmt"

	"github.com/hoangnd25/glidepath/internal/episode"
	"github.com/hoangnd25/glidepath/internal/policy"
	"github.com/hoangnd25/glidepath/internal/sim"
)

// Evaluator drives the simulation engine across every episode in a dataset
// and aggregates the outcomes into a risk report. Episodes run sequentially;
// a single episode failure aborts the whole batch, since dropping episodes
// would bias the risk statistics.
type Evaluator struct {
	dataset *episode.Dataset
	params  sim.Params
}

// NewEvaluator creates an evaluator over the given dataset.
func NewEvaluator(dataset *episode.Dataset, params sim.Params) (*Evaluator, error) {
	if dataset == nil || dataset.Count() == 0 {
		return nil, fmt.Errorf("evaluator needs a non-empty dataset")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{dataset: dataset, params: params}, nil
}

// Evaluate runs the policy on every episode and returns the aggregate risk
// report together with the per-episode outcomes.
func (ev *Evaluator) Evaluate(pol policy.Policy) (*RiskReport, []*sim.Outcome, error) {
	engine, err := sim.NewEngine(ev.dataset.HorizonYears(), ev.params)
	if err != nil {
		return nil, nil, err
	}

	episodes := ev.dataset.Episodes()
	outcomes := make([]*sim.Outcome, 0, len(episodes))
	for i := range episodes {
		out, err := engine.Run(&episodes[i], pol)
		if err != nil {
			return nil, nil, fmt.Errorf("episode %d (start month %d): %w",
				episodes[i].ID, episodes[i].StartMonth, err)
		}
		outcomes = append(outcomes, out)
	}

	report := NewRiskReport(pol.Name(), ev.dataset.HorizonYears(), ev.params.SpendingRate, outcomes)
	return report, outcomes, nil
}
