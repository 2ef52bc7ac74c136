package importer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-anniversary/internal/importer"
	"github.com/zalando/go-keyring"
)

type MockSecretStore struct {
	mock.Mock
}

func (m *MockSecretStore) Get(user string) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockSecretStore) Set(user, password string) error {
	return m.Called(user, password).Error(0)
}

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := importer.NewKeyringStore()

	_, err := store.Get("hr")
	require.Error(t, err)
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	require.NoError(t, store.Set("hr", "s3cret"))

	p, err := store.Get("hr")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", p)
}

func TestResolveCredentials(t *testing.T) {
	t.Run("Explicit password wins", func(t *testing.T) {
		store := new(MockSecretStore)
		cred := importer.ResolveCredentials(store, "hr", "typed")
		assert.Equal(t, importer.Credentials{User: "hr", Password: "typed"}, cred)
		store.AssertNotCalled(t, "Get", mock.Anything)
	})

	t.Run("No user means no lookup", func(t *testing.T) {
		store := new(MockSecretStore)
		cred := importer.ResolveCredentials(store, "", "")
		assert.Equal(t, importer.Credentials{}, cred)
		store.AssertNotCalled(t, "Get", mock.Anything)
	})

	t.Run("Password from store", func(t *testing.T) {
		store := new(MockSecretStore)
		store.On("Get", "hr").Return("stored", nil)
		cred := importer.ResolveCredentials(store, "hr", "")
		assert.Equal(t, "stored", cred.Password)
		store.AssertExpectations(t)
	})

	t.Run("Store failure leaves password empty", func(t *testing.T) {
		store := new(MockSecretStore)
		store.On("Get", "hr").Return("", errors.New("locked"))
		cred := importer.ResolveCredentials(store, "hr", "")
		assert.Equal(t, importer.Credentials{User: "hr"}, cred)
	})

	t.Run("Nil store", func(t *testing.T) {
		cred := importer.ResolveCredentials(nil, "hr", "")
		assert.Equal(t, importer.Credentials{User: "hr"}, cred)
	})
}
