package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/recipebox/recipebox/database/models"
	repositories "github.com/recipebox/recipebox/database/repositories"
	gomock "go.uber.org/mock/gomock"
)

// MockRecipeRepository is a mock of RecipeRepository interface.
type MockRecipeRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRecipeRepositoryMockRecorder
	isgomock struct{}
}

// MockRecipeRepositoryMockRecorder is the mock recorder for MockRecipeRepository.
type MockRecipeRepositoryMockRecorder struct {
	mock *MockRecipeRepository
}

// NewMockRecipeRepository creates a new mock instance.
func NewMockRecipeRepository(ctrl *gomock.Controller) *MockRecipeRepository {
	mock := &MockRecipeRepository{ctrl: ctrl}
	mock.recorder = &MockRecipeRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRecipeRepository) EXPECT() *MockRecipeRepositoryMockRecorder {
	return m.recorder
}

// AddIngredient mocks base method.
func (m *MockRecipeRepository) AddIngredient(ctx context.Context, recipeID, ingredientID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddIngredient", ctx, recipeID, ingredientID)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddIngredient indicates an expected call of AddIngredient.
func (mr *MockRecipeRepositoryMockRecorder) AddIngredient(ctx, recipeID, ingredientID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddIngredient", reflect.TypeOf((*MockRecipeRepository)(nil).AddIngredient), ctx, recipeID, ingredientID)
}

// AddTag mocks base method.
func (m *MockRecipeRepository) AddTag(ctx context.Context, recipeID, tagID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddTag", ctx, recipeID, tagID)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddTag indicates an expected call of AddTag.
func (mr *MockRecipeRepositoryMockRecorder) AddTag(ctx, recipeID, tagID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddTag", reflect.TypeOf((*MockRecipeRepository)(nil).AddTag), ctx, recipeID, tagID)
}

// ClearIngredients mocks base method.
func (m *MockRecipeRepository) ClearIngredients(ctx context.Context, recipeID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClearIngredients", ctx, recipeID)
	ret0, _ := ret[0].(error)
	return ret0
}

// ClearIngredients indicates an expected call of ClearIngredients.
func (mr *MockRecipeRepositoryMockRecorder) ClearIngredients(ctx, recipeID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClearIngredients", reflect.TypeOf((*MockRecipeRepository)(nil).ClearIngredients), ctx, recipeID)
}

// ClearTags mocks base method.
func (m *MockRecipeRepository) ClearTags(ctx context.Context, recipeID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClearTags", ctx, recipeID)
	ret0, _ := ret[0].(error)
	return ret0
}

// ClearTags indicates an expected call of ClearTags.
func (mr *MockRecipeRepositoryMockRecorder) ClearTags(ctx, recipeID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClearTags", reflect.TypeOf((*MockRecipeRepository)(nil).ClearTags), ctx, recipeID)
}

// Create mocks base method.
func (m *MockRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, recipe)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockRecipeRepositoryMockRecorder) Create(ctx, recipe any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockRecipeRepository)(nil).Create), ctx, recipe)
}

// Delete mocks base method.
func (m *MockRecipeRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, userID, id)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Delete indicates an expected call of Delete.
func (mr *MockRecipeRepositoryMockRecorder) Delete(ctx, userID, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockRecipeRepository)(nil).Delete), ctx, userID, id)
}

// GetAllByUserID mocks base method.
func (m *MockRecipeRepository) GetAllByUserID(ctx context.Context, userID int64, filters repositories.RecipeFilters, offset, limit int) ([]*models.Recipe, int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAllByUserID", ctx, userID, filters, offset, limit)
	ret0, _ := ret[0].([]*models.Recipe)
	ret1, _ := ret[1].(int)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetAllByUserID indicates an expected call of GetAllByUserID.
func (mr *MockRecipeRepositoryMockRecorder) GetAllByUserID(ctx, userID, filters, offset, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAllByUserID", reflect.TypeOf((*MockRecipeRepository)(nil).GetAllByUserID), ctx, userID, filters, offset, limit)
}

// GetByID mocks base method.
func (m *MockRecipeRepository) GetByID(ctx context.Context, userID, id int64) (*models.Recipe, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, userID, id)
	ret0, _ := ret[0].(*models.Recipe)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockRecipeRepositoryMockRecorder) GetByID(ctx, userID, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockRecipeRepository)(nil).GetByID), ctx, userID, id)
}

// Update mocks base method.
func (m *MockRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, recipe)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockRecipeRepositoryMockRecorder) Update(ctx, recipe any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockRecipeRepository)(nil).Update), ctx, recipe)
}
