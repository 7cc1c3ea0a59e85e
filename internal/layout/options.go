package layout

// GreedyMaxWidth is the threshold of the token-rewriting strategy, counted
// in tokens since the last newline.
const GreedyMaxWidth = 14

type Options struct {
	// MaxWidth is the line budget: display columns for Build, tokens for
	// Greedy. 0 picks the strategy default.
	MaxWidth int
	// TrailingCommas adds a comma after the last item of a wrapped list and
	// drops a source trailing comma from flat lists. Document strategy only.
	TrailingCommas bool
}

func (o Options) greedyDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = GreedyMaxWidth
	}
	return o
}
