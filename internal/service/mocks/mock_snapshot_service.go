package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campusapi/internal/service"
)

type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) Export(ctx context.Context, resource string) (*service.Snapshot, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Snapshot), args.Error(1)
}
