// Package signatures stores signature images on the local filesystem and
// returns opaque path strings. Callers never interpret the paths.
package signatures

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/qreport/backend/domain"
)

const (
	technicianFileName = "technician.png"
	customerFileName   = "customer.png"

	// maxImageSize caps uploads at 2 MiB; signature strokes are tiny.
	maxImageSize = 2 << 20
)

type Store struct {
	baseDir string
	logger  *zap.Logger
}

// NewStore ensures the base directory exists.
func NewStore(baseDir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &Store{baseDir: baseDir, logger: logger}, nil
}

// SaveTechnicianSignature persists the technician signature image for the
// intervention and returns its path.
func (s *Store) SaveTechnicianSignature(interventionID string, image []byte) (string, error) {
	return s.save(interventionID, technicianFileName, image)
}

// SaveCustomerSignature persists the customer signature image for the
// intervention and returns its path.
func (s *Store) SaveCustomerSignature(interventionID string, image []byte) (string, error) {
	return s.save(interventionID, customerFileName, image)
}

func (s *Store) save(interventionID, fileName string, image []byte) (string, error) {
	if interventionID == "" || len(image) == 0 {
		return "", domain.ErrInvalidPayload
	}
	if len(image) > maxImageSize {
		return "", domain.NewErrorf(domain.ErrCodeInvalid, "signature image exceeds %d bytes", maxImageSize)
	}

	dir := filepath.Join(s.baseDir, interventionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create signature directory: %w", err)
	}

	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", fmt.Errorf("write signature image: %w", err)
	}

	s.logger.Debug("signature stored",
		zap.String("intervention_id", interventionID),
		zap.String("path", path))
	return path, nil
}
