package repositories

// RecipeFilters narrows recipe list queries. Zero values mean "no
// filter"; Search is applied in the service layer after the query.
type RecipeFilters struct {
	TagIDs        []int64
	IngredientIDs []int64
	Search        string
}
