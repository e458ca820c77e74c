package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"siteapi/internal/model"
	"siteapi/internal/service"
)

type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) List(ctx context.Context, col service.Collection) ([]model.Item, error) {
	args := m.Called(ctx, col)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockCollectionService) Create(ctx context.Context, col service.Collection, body model.Item) (model.Item, error) {
	args := m.Called(ctx, col, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *MockCollectionService) Remove(ctx context.Context, col service.Collection, id string) error {
	args := m.Called(ctx, col, id)
	return args.Error(0)
}

type MockGalleryService struct {
	mock.Mock
}

func (m *MockGalleryService) DeleteItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
