package quickcheck

// shrinkOutcome is the result of the greedy minimization search.
type shrinkOutcome struct {
	value          Value
	steps          int
	budgetExceeded bool
	kind           FailKind
	err            error
}

// shrinkSearch performs the greedy local search for a 1-minimal failing
// value: at each level the first failing candidate is taken and the search
// restarts from it; when no candidate fails, the current value is locally
// minimal. The eval callback reports whether a candidate still fails and
// how. Termination is guaranteed by the shrink strategies' strictly
// decreasing measure, and defended by the accepted-step ceiling.
func shrinkSearch(failing Value, shrink ShrinkFunc, maxSteps int,
	eval func(Value) (bool, FailKind, error)) shrinkOutcome {

	out := shrinkOutcome{value: failing}
	for {
		if out.steps >= maxSteps {
			out.budgetExceeded = true
			return out
		}
		advanced := false
		for _, candidate := range shrink(out.value) {
			failed, kind, err := eval(candidate)
			if !failed {
				continue
			}
			out.value = candidate
			out.kind = kind
			out.err = err
			out.steps++
			advanced = true
			break
		}
		if !advanced {
			return out
		}
	}
}
