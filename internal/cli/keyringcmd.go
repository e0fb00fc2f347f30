package cli

import (
	"fmt"

	"github.com/lucasmonteiro/lingohabit/internal/keyring"
	"github.com/lucasmonteiro/lingohabit/internal/storage"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string from the OS keyring."`
}

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string (without an embedded password)."`
}

func (c *KeyringSetCmd) Run(ctx *Context) error {
	if _, err := storage.ValidateConnString(c.ConnectionString); err != nil {
		return err
	}
	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}
