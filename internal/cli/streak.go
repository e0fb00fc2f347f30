package cli

import "fmt"

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	service, err := ctx.Service()
	if err != nil {
		return err
	}

	streak, err := service.Streak()
	if err != nil {
		return err
	}

	fmt.Printf("Current streak: %d day(s)\n", streak.Current)
	fmt.Printf("Longest streak: %d day(s)\n", streak.Longest)
	if streak.LastCompletedDate != "" {
		fmt.Printf("Last completed: %s\n", streak.LastCompletedDate)
	}
	return nil
}

type FinalizeCmd struct {
	Date string `help:"Date to finalize (YYYY-MM-DD), defaults to today."`
}

// FinalizeCmd folds a day's final outcome into the streak. Safe to run more
// than once; only the first call for a date changes anything.
func (c *FinalizeCmd) Run(ctx *Context) error {
	service, err := ctx.Service()
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		progress, err := service.TodayProgress()
		if err != nil {
			return err
		}
		date = progress.DateLocal
	}

	streak, updated, err := service.FinalizeDay(date)
	if err != nil {
		return err
	}
	if !updated {
		fmt.Printf("%s already finalized. Current streak: %d day(s)\n", date, streak.Current)
		return nil
	}
	fmt.Printf("Finalized %s. Current streak: %d day(s), longest: %d\n", date, streak.Current, streak.Longest)
	return nil
}
