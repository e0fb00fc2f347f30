// Package keyring stores the Postgres connection string in the OS keyring so
// it never has to appear on the command line or in a config file.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/lucasmonteiro/lingohabit/internal/constants"
)

var (
	ErrNotFound           = errors.New("no connection string stored in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString reads the stored connection string. It returns
// ErrNotFound when nothing is stored and ErrKeyringUnavailable when the
// backing keyring cannot be reached at all.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case err == nil:
		return connStr, nil
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	default:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
}

func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("store connection string in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("remove connection string from keyring: %w", err)
	}
	return nil
}
