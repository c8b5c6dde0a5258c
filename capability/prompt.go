package capability

import "github.com/limoiie/dofu/policy"

// Prompt is the interactive-UX boundary: used both by the CLI (to seed a
// module chooser) and by the ASK strategy inside the Ensure protocol
// (spec.md section 4.8). Grounded on original_source's gum.py, whose two
// operations (choose, confirm) map directly onto this interface.
type Prompt interface {
	// Choose lets the user pick a subset of items from a header'd list,
	// pre-seeded with `selected`.
	Choose(items []string, header string, selected []string) ([]string, error)
	// Confirm asks a yes/no question, returning def if the user just
	// presses enter.
	Confirm(body string, def bool) (bool, error)
}

// strategyChooser adapts Prompt to policy.Chooser for the ASK strategy.
type strategyChooser struct {
	prompt Prompt
}

// NewStrategyChooser adapts a Prompt into a policy.Chooser.
func NewStrategyChooser(p Prompt) policy.Chooser {
	return &strategyChooser{prompt: p}
}

func (c *strategyChooser) ChooseStrategy(action string) (policy.Strategy, error) {
	items := []string{"TRY-AGAIN", policy.FORCE.String(), policy.AUTO.String(), policy.QUIT.String()}
	header := "Could not " + action + ". Choose a strategy:"
	chosen, err := c.prompt.Choose(items, header, []string{policy.AUTO.String()})
	if err != nil {
		return 0, err
	}
	if len(chosen) == 0 || chosen[0] == "TRY-AGAIN" {
		return policy.ASK, nil
	}
	return policy.ParseStrategy(chosen[0])
}
