package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasmonteiro/lingohabit/internal/tui"
)

type StudyCmd struct {
	Minutes int `help:"Session length in minutes; defaults to the daily goal."`
}

func (c *StudyCmd) Run(ctx *Context) error {
	service, err := ctx.Service()
	if err != nil {
		return err
	}

	minutes := c.Minutes
	if minutes <= 0 {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		minutes = settings.DailyGoalMinutes
	}

	model := tui.NewStudy(minutes)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("study timer failed: %w", err)
	}

	result, ok := final.(tui.StudyModel)
	if !ok || !result.ShouldSave() {
		fmt.Println("Session abandoned, nothing recorded.")
		return nil
	}

	elapsed := result.Elapsed()
	if elapsed < time.Minute {
		fmt.Println("Session shorter than a minute, nothing recorded.")
		return nil
	}

	start := result.Start()
	progress, err := service.RecordSession(start, start.Add(elapsed), false, "cli")
	if err != nil {
		return err
	}
	fmt.Printf("Session recorded. %s\n", FormatProgress(progress))
	return nil
}
