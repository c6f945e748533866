package badge

// Definition is the static description of one scoring rule. The catalog is
// fixed; definitions are never mutated at runtime.
type Definition struct {
	ID          string
	Name        string
	Description string
	Metric      string
	Category    string
}

// Result is the evaluator's output for one pitcher against one definition.
// Results are recomputed on every evaluation and never persisted.
type Result struct {
	BadgeID  string
	Name     string
	Earned   bool
	Progress float64
	Detail   string
}

// ClampProgress bounds a progress value to [0, 100].
func ClampProgress(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
