package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/la593ec/deuna-backend/internal/domain/charge"
)

// MockProviderGateway 決済プロバイダーゲートウェイのモック
type MockProviderGateway struct {
	mock.Mock
}

func (m *MockProviderGateway) CreateCharge(ctx context.Context, req *charge.ProviderCharge) (*charge.ProviderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*charge.ProviderResult), args.Error(1)
}

// MockOrderGateway 注文ゲートウェイのモック
type MockOrderGateway struct {
	mock.Mock
}

func (m *MockOrderGateway) MarkOrderPaid(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
