package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/zalando/go-keyring"
)

// SecretStore keeps remote-source passwords out of flags and settings files.
type SecretStore interface {
	Get(user string) (string, error)
	Set(user, password string) error
}

// KeyringStore stores passwords in the OS keyring under config.KeyringService.
type KeyringStore struct {
	Service string
}

// NewKeyringStore returns a store bound to the application's keyring service.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{Service: config.KeyringService}
}

// Get returns the password saved for user.
func (k *KeyringStore) Get(user string) (string, error) {
	p, err := keyring.Get(k.Service, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringGet, err)
	}
	return p, nil
}

// Set saves password for user.
func (k *KeyringStore) Set(user, password string) error {
	if err := keyring.Set(k.Service, user, password); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringSet, err)
	}
	slog.Info(config.MsgPassStored,
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyUser, user)
	return nil
}

// ResolveCredentials fills the password from store when only a user is given.
// A missing keyring entry is not an error: the source may not need a password.
func ResolveCredentials(store SecretStore, user, password string) Credentials {
	cred := Credentials{User: user, Password: password}
	if user == "" || password != "" || store == nil {
		return cred
	}

	p, err := store.Get(user)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, keyring.ErrNotFound) {
			level = slog.LevelDebug
		}
		slog.Log(context.Background(), level, config.MsgPassFail,
			config.LogKeyComponent, config.CompImporter,
			config.LogKeyUser, user,
			config.LogKeyError, err)
		return cred
	}
	cred.Password = p
	return cred
}
