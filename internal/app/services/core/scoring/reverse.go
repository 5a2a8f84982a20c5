package scoring

// applyReverseScoring reverses the listed items by computing
// (max + min) - value. For a 0-3 range, 0 becomes 3 and 1 becomes 2.
func applyReverseScoring(values map[string]float64, reversedItems []string, minValue, maxValue int) map[string]float64 {
	result := make(map[string]float64, len(values))
	for itemID, value := range values {
		result[itemID] = value
	}

	for _, itemID := range reversedItems {
		if original, ok := result[itemID]; ok {
			result[itemID] = float64(maxValue+minValue) - original
		}
	}
	return result
}
