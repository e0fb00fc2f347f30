package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lucasmonteiro/lingohabit/internal/constants"
	"github.com/lucasmonteiro/lingohabit/internal/logger"
)

type RemindCmd struct {
	DryRun bool `help:"Print the reminders that would be scheduled instead of arming timers."`
	Watch  bool `help:"Stay alive servicing reminder timers and weekly summaries."`
}

func (c *RemindCmd) Run(ctx *Context) error {
	service, err := ctx.Service()
	if err != nil {
		return err
	}

	if c.DryRun {
		reminders, err := service.EvaluateReminders()
		if err != nil {
			return err
		}
		if len(reminders) == 0 {
			fmt.Println("No reminders for this cycle (off-day or goal already met).")
			return nil
		}
		for _, rem := range reminders {
			fmt.Printf("[DryRun] %s reminder at %s\n", rem.Kind.NotificationKind(), rem.FireAt.Format("Mon 15:04"))
		}
		return nil
	}

	reminders, err := service.ScheduleReminders()
	if err != nil {
		return err
	}
	fmt.Printf("Scheduled %d reminder(s).\n", len(reminders))
	for _, rem := range reminders {
		fmt.Printf("  %s at %s\n", rem.Kind.NotificationKind(), rem.FireAt.Format(constants.DateFormat+" "+constants.TimeFormat))
	}

	if !c.Watch {
		// Without --watch the process exits before the timers fire; the
		// registered timers only matter in watch mode.
		if len(reminders) > 0 {
			fmt.Println("Run with --watch to keep the process alive until the reminders fire.")
		}
		return nil
	}

	service.StartWeeklySummaries()
	logger.Info("Watching for reminder fires")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	service.Stop()
	fmt.Println("Stopped.")
	return nil
}
