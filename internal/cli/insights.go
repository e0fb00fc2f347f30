package cli

import (
	"fmt"

	"github.com/lucasmonteiro/lingohabit/internal/clock"
	"github.com/lucasmonteiro/lingohabit/internal/insights"
)

type InsightsCmd struct {
	Days int `help:"How many trailing days of history to analyze." default:"14"`
}

func (c *InsightsCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	clk, err := clock.New(settings.Timezone)
	if err != nil {
		return err
	}

	analyzer := insights.NewAnalyzer(ctx.Store, clk)
	suggestions, err := analyzer.Analyze(c.Days)
	if err != nil {
		return err
	}

	if len(suggestions) == 0 {
		fmt.Println("No suggestions. Keep going!")
		return nil
	}

	fmt.Printf("Based on the last %d days:\n\n", c.Days)
	for _, s := range suggestions {
		switch s.Type {
		case insights.SuggestionLowerGoal:
			fmt.Printf("  • Lower your daily goal from %v to %v min (%s)\n", s.CurrentValue, s.SuggestedValue, s.Reason)
		case insights.SuggestionRaiseGoal:
			fmt.Printf("  • Raise your daily goal from %v to %v min (%s)\n", s.CurrentValue, s.SuggestedValue, s.Reason)
		case insights.SuggestionEnableReminders:
			fmt.Printf("  • Turn smart reminders back on (%s)\n", s.Reason)
		case insights.SuggestionFixDelivery:
			fmt.Printf("  • Check notification delivery (%s)\n", s.Reason)
		default:
			fmt.Printf("  • %s\n", s.Reason)
		}
	}
	fmt.Println("\nApply changes with 'lingohabit settings --edit'.")
	return nil
}
