package config

// CategoryPresets returns the suggested task categories. These are hints
// for adapters; the store accepts any free-text category.
func CategoryPresets() []string {
	return []string{
		"work",
		"design",
		"dev",
		"study",
		"life",
		"temp",
	}
}
