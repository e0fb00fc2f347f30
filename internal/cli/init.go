package cli

import "fmt"

type InitCmd struct {
	Force bool `help:"Open existing storage instead of failing when it is already initialized." short:"f"`
}

func (c *InitCmd) Run(ctx *Context) error {
	err := ctx.Store.Init()
	if err == nil {
		fmt.Printf("Initialized lingohabit storage at %s\n", ctx.Store.GetConfigPath())
		return nil
	}
	if !c.Force {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	fmt.Printf("Storage already initialized at %s\n", ctx.Store.GetConfigPath())
	return nil
}
