package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContactValidateEmailShape(t *testing.T) {
	contact := Contact{
		ClientID: "client-1",
		FullName: "Mario Rossi",
	}

	// Email is optional.
	require.NoError(t, contact.Validate())

	contact.Email = "mario.rossi@example.com"
	require.NoError(t, contact.Validate())

	contact.Email = "not-an-address"
	err := contact.Validate()
	require.True(t, IsDomainError(err, ErrCodeInvalid))
}

func TestClientValidateEmailShape(t *testing.T) {
	client := Client{BusinessName: "ACME Robotics"}
	require.NoError(t, client.Validate())

	client.Email = "info@example.com"
	require.NoError(t, client.Validate())

	client.Email = "info@@example"
	err := client.Validate()
	require.True(t, IsDomainError(err, ErrCodeInvalid))
}
