package inventory

// TotalWeight sums quantity-weighted item weight. Items with zero or negative
// quantity, or zero weight, contribute nothing.
func TotalWeight(items []Item) float64 {
	total := 0.0
	for _, it := range items {
		if it.Quantity <= 0 || it.Weight <= 0 {
			continue
		}
		total += float64(it.Quantity) * it.Weight
	}
	return total
}

// TotalValue sums quantity-weighted item value.
func TotalValue(items []Item) float64 {
	total := 0.0
	for _, it := range items {
		if it.Quantity <= 0 || it.Value <= 0 {
			continue
		}
		total += float64(it.Quantity) * it.Value
	}
	return total
}

// TotalVolume sums quantity-weighted item volume.
func TotalVolume(items []Item) float64 {
	total := 0.0
	for _, it := range items {
		if it.Quantity <= 0 || it.Volume <= 0 {
			continue
		}
		total += float64(it.Quantity) * it.Volume
	}
	return total
}
