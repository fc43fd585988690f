package integrity

import (
	"context"
	"fmt"

	"table-editor/core/storage"
	"table-editor/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	region string
	db     *gorm.DB
	expect checks.TableExpectation
	logger *zap.Logger
}

// NewService creates a new integrity service. client is nil when the archive is disabled.
func NewService(client storage.Client, bucket, region string, db *gorm.DB, expect checks.TableExpectation, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		region: region,
		db:     db,
		expect: expect,
		logger: logger,
	}
}

// CheckTable inspects the edited table.
func (s *Service) CheckTable() (*checks.TableReport, error) {
	return checks.CheckTable(s.db, s.expect)
}

// CheckStorage checks the archive bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage is disabled")
	}
	return checks.CheckStorage(ctx, s.client, s.bucket)
}

// FixStorage creates the archive bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("storage is disabled")
	}
	return checks.FixStorage(ctx, s.client, s.bucket, s.region, s.logger)
}
