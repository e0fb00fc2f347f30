package cli

import (
	"fmt"

	"github.com/lucasmonteiro/lingohabit/internal/models"
)

type NotifyCmd struct {
	Test NotifyTestCmd `cmd:"" help:"Send a test notification." default:"1"`
}

type NotifyTestCmd struct{}

func (c *NotifyTestCmd) Run(ctx *Context) error {
	service, err := ctx.Service()
	if err != nil {
		return err
	}

	result, err := service.SendTestNotification()
	if err != nil {
		return err
	}

	switch result {
	case models.ResultDelivered:
		fmt.Println("Test notification delivered.")
	case models.ResultSkipped:
		fmt.Println("Test notification skipped: notification permission not granted (is lingohabit-tray running?).")
	default:
		fmt.Println("Test notification failed; see logs for details.")
	}
	return nil
}
