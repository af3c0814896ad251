package mocks

import (
	"context"

	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// MockTxManager runs the unit of work directly against the bundled mock
// repositories, without any transactional semantics.
type MockTxManager struct {
	Repos *ports.Repositories
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, r *ports.Repositories) error) error {
	return fn(ctx, m.Repos)
}
