package cli

import (
	"fmt"
	"time"
)

type SessionCmd struct {
	Add SessionAddCmd `cmd:"" help:"Record a completed study session." default:"1"`
}

type SessionAddCmd struct {
	Minutes int    `help:"Session length in minutes." required:""`
	Device  string `help:"Device tag for the session." default:"cli"`
}

func (c *SessionAddCmd) Run(ctx *Context) error {
	if c.Minutes <= 0 {
		return fmt.Errorf("minutes must be positive, got %d", c.Minutes)
	}

	service, err := ctx.Service()
	if err != nil {
		return err
	}

	end := time.Now()
	start := end.Add(-time.Duration(c.Minutes) * time.Minute)
	progress, err := service.RecordSession(start, end, true, c.Device)
	if err != nil {
		return err
	}

	fmt.Printf("Session recorded. %s\n", FormatProgress(progress))
	return nil
}
