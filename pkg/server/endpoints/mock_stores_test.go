package endpoints

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func (m *MockUsersStore) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	args := m.Called(ctx, username, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockProductsStore implements store.ProductsStore for testing using testify/mock
type MockProductsStore struct {
	mock.Mock
}

func (m *MockProductsStore) ListProducts(ctx context.Context, ownerID string) ([]model.Product, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductsStore) FetchProduct(ctx context.Context, ownerID, id string) (*model.Product, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductsStore) CreateProduct(ctx context.Context, ownerID, name string) (*model.Product, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductsStore) UpdateProduct(ctx context.Context, ownerID, id, name string) (*model.Product, error) {
	args := m.Called(ctx, ownerID, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductsStore) DeleteProduct(ctx context.Context, ownerID, id string) (*model.Product, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockUpdatesStore implements store.UpdatesStore for testing using testify/mock
type MockUpdatesStore struct {
	mock.Mock
}

func (m *MockUpdatesStore) ListUpdates(ctx context.Context, ownerID string) ([]model.Update, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Update), args.Error(1)
}

func (m *MockUpdatesStore) ListProductUpdates(ctx context.Context, ownerID, productID string) ([]model.Update, error) {
	args := m.Called(ctx, ownerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Update), args.Error(1)
}

func (m *MockUpdatesStore) FetchUpdate(ctx context.Context, ownerID, id string) (*model.Update, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Update), args.Error(1)
}

func (m *MockUpdatesStore) CreateUpdate(ctx context.Context, ownerID string, u *model.Update) error {
	args := m.Called(ctx, ownerID, u)
	return args.Error(0)
}

func (m *MockUpdatesStore) PatchUpdate(ctx context.Context, ownerID, id string, patch store.UpdatePatch) (*model.Update, error) {
	args := m.Called(ctx, ownerID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Update), args.Error(1)
}

func (m *MockUpdatesStore) DeleteUpdate(ctx context.Context, ownerID, id string) (*model.Update, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Update), args.Error(1)
}

// MockUpdatePointsStore implements store.UpdatePointsStore for testing using testify/mock
type MockUpdatePointsStore struct {
	mock.Mock
}

func (m *MockUpdatePointsStore) ListUpdatePoints(ctx context.Context, ownerID string) ([]model.UpdatePoint, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UpdatePoint), args.Error(1)
}

func (m *MockUpdatePointsStore) FetchUpdatePoint(ctx context.Context, ownerID, id string) (*model.UpdatePoint, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpdatePoint), args.Error(1)
}

func (m *MockUpdatePointsStore) CreateUpdatePoint(ctx context.Context, ownerID string, p *model.UpdatePoint) error {
	args := m.Called(ctx, ownerID, p)
	return args.Error(0)
}

func (m *MockUpdatePointsStore) PatchUpdatePoint(ctx context.Context, ownerID, id string, patch store.UpdatePointPatch) (*model.UpdatePoint, error) {
	args := m.Called(ctx, ownerID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpdatePoint), args.Error(1)
}

func (m *MockUpdatePointsStore) DeleteUpdatePoint(ctx context.Context, ownerID, id string) (*model.UpdatePoint, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpdatePoint), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
