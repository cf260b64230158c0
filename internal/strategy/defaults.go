package strategy

// Built-in set names
const (
	SixMax = "six-max"
	Single = "single"
)

func rng(includes []string, excludes ...string) Range {
	return Range{Includes: includes, Excludes: excludes}
}

// DefaultSixMax returns the six-handed chart. Each seat inherits from the
// seat before it, so later positions only list what they add.
func DefaultSixMax() *Set {
	utg := PositionStrategy{Position: "UTG"}
	utg.Ranges[Pat] = rng([]string{"8s+"})
	utg.Ranges[Draw1] = rng([]string{"8654+", "6322+", "7622+"}, "4567")
	utg.Ranges[Draw2] = rng([]string{"732+"})

	hj := PositionStrategy{Position: "HJ", InheritsFrom: "UTG"}
	hj.Ranges[Draw1] = rng([]string{"8743+"})
	hj.Ranges[Draw2] = rng([]string{"742+"})

	co := PositionStrategy{Position: "CO", InheritsFrom: "HJ"}
	co.Ranges[Pat] = rng([]string{"9s+"})
	co.Ranges[Draw1] = rng([]string{"9543+"})
	co.Ranges[Draw2] = rng([]string{"752+"})
	co.Ranges[Draw3] = rng([]string{"3322", "3222"})

	btn := PositionStrategy{Position: "BTN", InheritsFrom: "CO"}
	btn.Ranges[Draw1] = rng([]string{"9654+"})
	btn.Ranges[Draw2] = rng([]string{"762+"})
	btn.Ranges[Draw3] = rng([]string{"32", "42"})

	sb := PositionStrategy{Position: "SB", InheritsFrom: "BTN"}
	sb.Ranges[Pat] = rng([]string{"Ts+"})
	sb.Ranges[Draw2] = rng([]string{"862+"})

	bb := PositionStrategy{Position: "BB", InheritsFrom: "SB"}
	bb.Ranges[Draw1] = rng([]string{"T654+"})
	bb.Ranges[Draw2] = rng([]string{"872+"})
	bb.Ranges[Draw3] = rng([]string{"43", "52"})

	return MustNewSet(SixMax, false, utg, hj, co, btn, sb, bb)
}

// DefaultSingle returns the one-seat chart used with the low deck. The
// blocker carve-outs are hard rules here rather than range entries.
func DefaultSingle() *Set {
	p := PositionStrategy{Position: "Table"}
	p.Ranges[Pat] = rng([]string{"8s+"})
	p.Ranges[Draw1] = rng([]string{"8654+"}, "4567")
	p.Ranges[Draw2] = rng([]string{"732+"})
	return MustNewSet(Single, true, p)
}

// Defaults returns every built-in set keyed by name
func Defaults() map[string]*Set {
	return map[string]*Set{
		SixMax: DefaultSixMax(),
		Single: DefaultSingle(),
	}
}
