package scoring

import "finalform-service/internal/pkg/constvars"

// computeScore applies a scoring method over the present values, in
// scale-declared item order.
func computeScore(values []float64, method string) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	switch method {
	case constvars.MethodAverage:
		return sum / float64(len(values))
	case constvars.MethodSumThenDouble:
		return sum * 2
	default:
		return sum
	}
}

// prorateScore rescales a score computed from fewer-than-expected items to
// estimate the full-scale score. The raw sum is multiplied by total/used
// before method semantics; averages need no correction since they are
// already per-item.
func prorateScore(values []float64, method string, itemsTotal int) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	ratio := float64(itemsTotal) / float64(len(values))

	switch method {
	case constvars.MethodAverage:
		return sum / float64(len(values))
	case constvars.MethodSumThenDouble:
		return sum * ratio * 2
	default:
		return sum * ratio
	}
}
