package cli

import "fmt"

type SummaryCmd struct {
	Send bool `help:"Dispatch the weekly summary notification instead of printing it."`
}

func (c *SummaryCmd) Run(ctx *Context) error {
	service, err := ctx.Service()
	if err != nil {
		return err
	}

	if c.Send {
		if err := service.SendWeeklySummary(); err != nil {
			return err
		}
		fmt.Println("Weekly summary dispatched.")
		return nil
	}

	minutes, goal, err := service.WeeklyTotals()
	if err != nil {
		return err
	}
	fmt.Printf("This week: %d/%d min\n", minutes, goal)
	return nil
}
