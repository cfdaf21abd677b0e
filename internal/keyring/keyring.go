// Package keyring keeps the PostgreSQL connection string in the OS keyring,
// so it never has to be written to a config file or shell history.
package keyring

import (
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/jugucan/gymsched/internal/constants"
)

var (
	ErrNotFound    = errors.New("no connection string in keyring")
	ErrUnavailable = errors.New("OS keyring is not available")
)

// ConnectionString returns the stored connection string.
func ConnectionString() (string, error) {
	connStr, err := gokeyring.Get(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case errors.Is(err, gokeyring.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return connStr, nil
}

// StoreConnectionString replaces the stored connection string.
func StoreConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the stored connection string.
func DeleteConnectionString() error {
	err := gokeyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case errors.Is(err, gokeyring.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// Available reports whether the keyring answers at all. An empty keyring
// counts as available.
func Available() bool {
	_, err := gokeyring.Get(constants.AppName, "availability-check")
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}
