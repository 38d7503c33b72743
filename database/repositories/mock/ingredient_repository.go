package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/recipebox/recipebox/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockIngredientRepository is a mock of IngredientRepository interface.
type MockIngredientRepository struct {
	ctrl     *gomock.Controller
	recorder *MockIngredientRepositoryMockRecorder
	isgomock struct{}
}

// MockIngredientRepositoryMockRecorder is the mock recorder for MockIngredientRepository.
type MockIngredientRepositoryMockRecorder struct {
	mock *MockIngredientRepository
}

// NewMockIngredientRepository creates a new mock instance.
func NewMockIngredientRepository(ctrl *gomock.Controller) *MockIngredientRepository {
	mock := &MockIngredientRepository{ctrl: ctrl}
	mock.recorder = &MockIngredientRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIngredientRepository) EXPECT() *MockIngredientRepositoryMockRecorder {
	return m.recorder
}

// Delete mocks base method.
func (m *MockIngredientRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, userID, id)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Delete indicates an expected call of Delete.
func (mr *MockIngredientRepositoryMockRecorder) Delete(ctx, userID, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockIngredientRepository)(nil).Delete), ctx, userID, id)
}

// GetAllByUserID mocks base method.
func (m *MockIngredientRepository) GetAllByUserID(ctx context.Context, userID int64, assignedOnly bool) ([]*models.Ingredient, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAllByUserID", ctx, userID, assignedOnly)
	ret0, _ := ret[0].([]*models.Ingredient)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAllByUserID indicates an expected call of GetAllByUserID.
func (mr *MockIngredientRepositoryMockRecorder) GetAllByUserID(ctx, userID, assignedOnly any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAllByUserID", reflect.TypeOf((*MockIngredientRepository)(nil).GetAllByUserID), ctx, userID, assignedOnly)
}

// GetByID mocks base method.
func (m *MockIngredientRepository) GetByID(ctx context.Context, userID, id int64) (*models.Ingredient, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, userID, id)
	ret0, _ := ret[0].(*models.Ingredient)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockIngredientRepositoryMockRecorder) GetByID(ctx, userID, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockIngredientRepository)(nil).GetByID), ctx, userID, id)
}

// GetOrCreate mocks base method.
func (m *MockIngredientRepository) GetOrCreate(ctx context.Context, userID int64, name string) (*models.Ingredient, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOrCreate", ctx, userID, name)
	ret0, _ := ret[0].(*models.Ingredient)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetOrCreate indicates an expected call of GetOrCreate.
func (mr *MockIngredientRepositoryMockRecorder) GetOrCreate(ctx, userID, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOrCreate", reflect.TypeOf((*MockIngredientRepository)(nil).GetOrCreate), ctx, userID, name)
}

// Update mocks base method.
func (m *MockIngredientRepository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, ingredient)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockIngredientRepositoryMockRecorder) Update(ctx, ingredient any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockIngredientRepository)(nil).Update), ctx, ingredient)
}
