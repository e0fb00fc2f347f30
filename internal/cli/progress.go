package cli

import (
	"fmt"

	"github.com/lucasmonteiro/lingohabit/internal/utils"
)

type ProgressCmd struct {
	Add int `help:"Add minutes to today's progress manually." default:"0"`
}

func (c *ProgressCmd) Run(ctx *Context) error {
	service, err := ctx.Service()
	if err != nil {
		return err
	}

	if c.Add > 0 {
		progress, err := service.AddMinutes(c.Add)
		if err != nil {
			return err
		}
		fmt.Printf("Progress updated. %s\n", FormatProgress(progress))
		return nil
	}

	progress, err := service.TodayProgress()
	if err != nil {
		return err
	}

	fmt.Println(FormatProgress(progress))
	if progress.Reached100 {
		fmt.Println("Goal reached! 🎉")
	} else {
		remaining := progress.GoalMinutes - progress.MinutesDone
		fmt.Printf("%s to go.\n", utils.FormatTimeRemaining(remaining))
	}

	minutes, goal, err := service.WeeklyTotals()
	if err != nil {
		return err
	}
	fmt.Printf("This week: %d/%d min\n", minutes, goal)
	return nil
}
