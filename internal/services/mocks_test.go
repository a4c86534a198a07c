package services

import (
	"context"

	"github.com/ruralpay/expense-tracker/internal/events"
	"github.com/ruralpay/expense-tracker/internal/ledger"
	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordExpense(ctx context.Context, userID int64, req ledger.EntryRequest) (*models.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockRecorder) RecordIncome(ctx context.Context, userID int64, req ledger.EntryRequest) (*models.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockRecorder) RecordTransfer(ctx context.Context, userID int64, req ledger.TransferRequest) (*models.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishTransactionRecorded(ctx context.Context, evt events.TransactionRecorded) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return nil
}
