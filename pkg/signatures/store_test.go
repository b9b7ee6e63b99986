package signatures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qreport/backend/domain"
)

func TestStoreSavesImages(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	image := []byte{0x89, 0x50, 0x4e, 0x47}

	techPath, err := store.SaveTechnicianSignature("iv-1", image)
	require.NoError(t, err)
	require.Equal(t, "technician.png", filepath.Base(techPath))

	custPath, err := store.SaveCustomerSignature("iv-1", image)
	require.NoError(t, err)
	require.Equal(t, "customer.png", filepath.Base(custPath))

	written, err := os.ReadFile(techPath)
	require.NoError(t, err)
	require.Equal(t, image, written)
}

func TestStoreOverwritesOnResign(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	first, err := store.SaveTechnicianSignature("iv-1", []byte("first"))
	require.NoError(t, err)
	second, err := store.SaveTechnicianSignature("iv-1", []byte("second"))
	require.NoError(t, err)
	require.Equal(t, first, second)

	written, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), written)
}

func TestStoreRejectsBadInput(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = store.SaveTechnicianSignature("", []byte("x"))
	require.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = store.SaveTechnicianSignature("iv-1", nil)
	require.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = store.SaveTechnicianSignature("iv-1", make([]byte, maxImageSize+1))
	require.Error(t, err)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
