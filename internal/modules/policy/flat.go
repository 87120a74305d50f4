package policy

import "github.com/hedgelab/hedgebench/internal/domain"

// FlatPolicy never hedges: it always selects the first action, the zero
// position. Useful as a floor in comparisons and as a test stand-in.
type FlatPolicy struct{}

// SelectAction always returns action 0.
func (FlatPolicy) SelectAction(obs domain.Observation, training bool) (int, float64, error) {
	return 0, 0, nil
}
