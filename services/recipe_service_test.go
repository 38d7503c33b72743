package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/recipebox/recipebox/database/models"
	"github.com/recipebox/recipebox/database/repositories"
	"github.com/recipebox/recipebox/database/repositories/mock"
	webmodels "github.com/recipebox/recipebox/models"
)

func Test_RecipeService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	recipes := mock.NewMockRecipeRepository(ctrl)
	tags := mock.NewMockTagRepository(ctrl)
	ingredients := mock.NewMockIngredientRepository(ctrl)

	recipes.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Recipe) error {
			r.ID = 7
			return nil
		})

	tags.EXPECT().
		GetOrCreate(gomock.Any(), int64(1), "Dessert").
		Return(&models.Tag{ID: 3, UserID: 1, Name: "Dessert"}, nil)
	recipes.EXPECT().
		AddTag(gomock.Any(), int64(7), int64(3)).
		Return(nil)

	ingredients.EXPECT().
		GetOrCreate(gomock.Any(), int64(1), "Sugar").
		Return(&models.Ingredient{ID: 9, UserID: 1, Name: "Sugar"}, nil)
	recipes.EXPECT().
		AddIngredient(gomock.Any(), int64(7), int64(9)).
		Return(nil)

	recipes.EXPECT().
		GetByID(gomock.Any(), int64(1), int64(7)).
		Return(&models.Recipe{ID: 7, UserID: 1, Title: "Cake"}, nil)

	s := NewRecipeService(recipes, tags, ingredients)
	got, err := s.Create(context.Background(), 1, &webmodels.RecipeCreateRequest{
		Title:       "Cake",
		TimeMinutes: 30,
		Price:       5.50,
		Tags:        []webmodels.NamedItem{{Name: "Dessert"}},
		Ingredients: []webmodels.NamedItem{{Name: "Sugar"}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got.ID != 7 {
		t.Errorf("Create() recipe ID = %d, want 7", got.ID)
	}
}

func Test_RecipeService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	recipes := mock.NewMockRecipeRepository(ctrl)

	recipes.EXPECT().
		GetByID(gomock.Any(), int64(1), int64(42)).
		Return(nil, sql.ErrNoRows)

	s := NewRecipeService(recipes, mock.NewMockTagRepository(ctrl), mock.NewMockIngredientRepository(ctrl))
	_, err := s.Get(context.Background(), 1, 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func Test_RecipeService_Update_CollectionSemantics(t *testing.T) {
	title := "Updated"
	emptyTags := []webmodels.NamedItem{}

	tests := []struct {
		name       string
		req        *webmodels.RecipeUpdateRequest
		wantClears bool
	}{
		{
			name: "absent collections leave links untouched",
			req:  &webmodels.RecipeUpdateRequest{Title: &title},
		},
		{
			name:       "empty collection clears links",
			req:        &webmodels.RecipeUpdateRequest{Title: &title, Tags: &emptyTags},
			wantClears: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			recipes := mock.NewMockRecipeRepository(ctrl)
			tags := mock.NewMockTagRepository(ctrl)
			ingredients := mock.NewMockIngredientRepository(ctrl)

			recipes.EXPECT().
				GetByID(gomock.Any(), int64(1), int64(7)).
				Return(&models.Recipe{ID: 7, UserID: 1, Title: "Cake"}, nil).
				Times(2)
			recipes.EXPECT().
				Update(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, r *models.Recipe) error {
					if r.Title != title {
						t.Errorf("Update() title = %q, want %q", r.Title, title)
					}
					return nil
				})

			if tt.wantClears {
				recipes.EXPECT().ClearTags(gomock.Any(), int64(7)).Return(nil)
			}

			s := NewRecipeService(recipes, tags, ingredients)
			if _, err := s.Update(context.Background(), 1, 7, tt.req); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
		})
	}
}

func Test_RecipeService_List_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	recipes := mock.NewMockRecipeRepository(ctrl)

	all := []*models.Recipe{
		{ID: 3, UserID: 1, Title: "Chocolate Cake"},
		{ID: 2, UserID: 1, Title: "Lentil Soup"},
		{ID: 1, UserID: 1, Title: "Carrot Cake"},
	}
	filters := repositories.RecipeFilters{Search: "cake"}

	recipes.EXPECT().
		GetAllByUserID(gomock.Any(), int64(1), filters, 0, 0).
		Return(all, len(all), nil)

	s := NewRecipeService(recipes, mock.NewMockTagRepository(ctrl), mock.NewMockIngredientRepository(ctrl))
	got, total, err := s.List(context.Background(), 1, filters, 1, 20)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 {
		t.Errorf("List() total = %d, want 2", total)
	}
	for _, r := range got {
		if r.Title == "Lentil Soup" {
			t.Errorf("List() returned non-matching recipe %q", r.Title)
		}
	}
}

func Test_RecipeService_List_Paginates(t *testing.T) {
	ctrl := gomock.NewController(t)
	recipes := mock.NewMockRecipeRepository(ctrl)

	recipes.EXPECT().
		GetAllByUserID(gomock.Any(), int64(1), repositories.RecipeFilters{}, 20, 20).
		Return([]*models.Recipe{{ID: 1, UserID: 1}}, 21, nil)

	s := NewRecipeService(recipes, mock.NewMockTagRepository(ctrl), mock.NewMockIngredientRepository(ctrl))
	got, total, err := s.List(context.Background(), 1, repositories.RecipeFilters{}, 2, 20)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || total != 21 {
		t.Errorf("List() = %d recipes, total %d, want 1 and 21", len(got), total)
	}
}

func Test_RecipeService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		deleted bool
		wantErr error
	}{
		{name: "existing recipe", deleted: true},
		{name: "missing recipe", deleted: false, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			recipes := mock.NewMockRecipeRepository(ctrl)
			recipes.EXPECT().
				Delete(gomock.Any(), int64(1), int64(7)).
				Return(tt.deleted, nil)

			s := NewRecipeService(recipes, mock.NewMockTagRepository(ctrl), mock.NewMockIngredientRepository(ctrl))
			err := s.Delete(context.Background(), 1, 7)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Delete() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
