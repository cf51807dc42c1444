package sanitizer

// NormalizeStringSlice applies normalizer to every item and drops blanks and
// items whose key was already seen. The first spelling wins and order is kept.
func NormalizeStringSlice(items []string, normalizer, key func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		k := key(normalized)
		if seen[k] {
			continue
		}

		seen[k] = true
		result = append(result, normalized)
	}

	return result
}

func NormalizeFeatures(features []string) []string {
	return NormalizeStringSlice(features, TrimAndNormalize, NormalizeNameForComparison)
}
