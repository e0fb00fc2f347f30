package cli

import (
	"fmt"
	"time"
)

type LogsCmd struct {
	Limit int `help:"Maximum number of entries to show, newest last." default:"20"`
}

func (c *LogsCmd) Run(ctx *Context) error {
	logs, err := ctx.Store.GetNotificationLogs(c.Limit)
	if err != nil {
		return err
	}

	if len(logs) == 0 {
		fmt.Println("No notifications logged yet.")
		return nil
	}

	for _, entry := range logs {
		status := string(entry.Result)
		if entry.Canceled {
			status = "canceled"
		}
		delivered := "-"
		if entry.DeliveredAt != nil {
			delivered = entry.DeliveredAt.Format(time.RFC3339)
		}
		fmt.Printf("%-20s %-10s scheduled=%s delivered=%s\n",
			entry.Kind, status, entry.ScheduledFor.Format(time.RFC3339), delivered)
	}
	return nil
}
