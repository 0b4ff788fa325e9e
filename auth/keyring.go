// Package auth keeps the panel token in the system keyring.
package auth

import (
	"errors"

	"github.com/streambox/streambox/constant"
	"github.com/zalando/go-keyring"
)

const user = "panel-token"

// ErrNotFound is returned by Token when no token is stored.
var ErrNotFound = keyring.ErrNotFound

// SetToken stores the shared secret required by the server.
func SetToken(token string) error {
	return keyring.Set(constant.Streambox, user, token)
}

// Token returns the stored shared secret.
func Token() (string, error) {
	return keyring.Get(constant.Streambox, user)
}

// LookupToken returns the stored shared secret, or an empty string when none is stored.
func LookupToken() (string, error) {
	token, err := Token()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return token, err
}

// DeleteToken removes the stored shared secret.
func DeleteToken() error {
	return keyring.Delete(constant.Streambox, user)
}
