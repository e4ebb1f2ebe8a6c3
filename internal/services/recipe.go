package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/repositories"
)

//go:generate mockgen -source=recipe.go -destination=recipe_mock.go -package=services

// RecipeRepository defines recipe storage operations.
type RecipeRepository interface {
	List(ctx context.Context, f models.RecipeFilter) ([]models.RecipeDB, error)
	Count(ctx context.Context, f models.RecipeFilter) (int, error)
	GetByID(ctx context.Context, id int64) (*models.RecipeDB, error)
	Create(ctx context.Context, recipe *models.RecipeDB) error
	Update(ctx context.Context, recipe *models.RecipeDB) error
	Delete(ctx context.Context, id int64) error
	ReplaceIngredients(ctx context.Context, recipeID int64, items []models.IngredientAmount) error
	SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error
	GetIngredients(ctx context.Context, recipeIDs []int64) ([]models.RecipeIngredientDB, error)
	GetTags(ctx context.Context, recipeIDs []int64) ([]models.RecipeTagDB, error)
}

// AuthorReader loads recipe authors.
type AuthorReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]models.UserDB, error)
}

// RecipeMarker tells which recipes a user has in a list.
type RecipeMarker interface {
	MarkedAmong(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
}

// RecipeService handles recipe reads and author-only writes.
type RecipeService struct {
	recipes   RecipeRepository
	authors   AuthorReader
	favorites RecipeMarker
	carts     RecipeMarker
	subs      FollowChecker
	images    ImageStore
	events    EventPublisher
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(
	recipes RecipeRepository,
	authors AuthorReader,
	favorites RecipeMarker,
	carts RecipeMarker,
	subs FollowChecker,
	images ImageStore,
	events EventPublisher,
) *RecipeService {
	return &RecipeService{
		recipes:   recipes,
		authors:   authors,
		favorites: favorites,
		carts:     carts,
		subs:      subs,
		images:    images,
		events:    events,
	}
}

// List returns one page of recipes matching q, newest first, and the number
// of matching recipes.
func (s *RecipeService) List(ctx context.Context, viewerID int64, q models.RecipeQuery) ([]models.Recipe, int, error) {
	filter := models.RecipeFilter{
		AuthorID: q.AuthorID,
		TagSlugs: q.Tags,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if viewerID != 0 {
		if q.IsFavorited {
			filter.FavoritedBy = &viewerID
		}
		if q.IsInShoppingCart {
			filter.InShoppingCartOf = &viewerID
		}
	}

	count, err := s.recipes.Count(ctx, filter)
	if err != nil {
		logger.Log.Errorw("failed to count recipes", "error", err)
		return nil, 0, err
	}

	rows, err := s.recipes.List(ctx, filter)
	if err != nil {
		logger.Log.Errorw("failed to list recipes", "error", err)
		return nil, 0, err
	}

	recipes, err := s.represent(ctx, viewerID, rows)
	if err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

// Get returns recipe id as seen by viewerID.
func (s *RecipeService) Get(ctx context.Context, viewerID, id int64) (*models.Recipe, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return nil, err
	}

	recipes, err := s.represent(ctx, viewerID, []models.RecipeDB{*row})
	if err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

// Create stores a new recipe of authorID.
func (s *RecipeService) Create(ctx context.Context, authorID int64, req models.RecipeWriteRequest) (*models.Recipe, error) {
	img, err := validateRecipe(req, true)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.saveImage(ctx, img)
	if err != nil {
		return nil, err
	}

	row := &models.RecipeDB{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       imageURL,
		CookingTime: req.CookingTime,
	}
	if err := s.recipes.Create(ctx, row); err != nil {
		logger.Log.Errorw("failed to create recipe", "author_id", authorID, "error", err)
		return nil, err
	}
	if err := s.writeComposition(ctx, row.ID, req); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, models.Event{Type: models.EventRecipeCreated, UserID: authorID, RecipeID: row.ID})

	return s.Get(ctx, authorID, row.ID)
}

// Update overwrites recipe id. Only its author may do so. The image is
// replaced only when req carries one.
func (s *RecipeService) Update(ctx context.Context, userID, id int64, req models.RecipeWriteRequest) (*models.Recipe, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.AuthorID != userID {
		return nil, ErrForbidden
	}

	img, err := validateRecipe(req, false)
	if err != nil {
		return nil, err
	}
	if img != nil {
		if row.Image, err = s.saveImage(ctx, img); err != nil {
			return nil, err
		}
	}

	row.Name = req.Name
	row.Text = req.Text
	row.CookingTime = req.CookingTime
	if err := s.recipes.Update(ctx, row); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		logger.Log.Errorw("failed to update recipe", "recipe_id", id, "error", err)
		return nil, err
	}
	if err := s.writeComposition(ctx, id, req); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, models.Event{Type: models.EventRecipeUpdated, UserID: userID, RecipeID: id})

	return s.Get(ctx, userID, id)
}

// Delete removes recipe id. Only its author may do so.
func (s *RecipeService) Delete(ctx context.Context, userID, id int64) error {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return err
	}
	if row.AuthorID != userID {
		return ErrForbidden
	}

	if err := s.recipes.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRecipeNotFound
		}
		logger.Log.Errorw("failed to delete recipe", "recipe_id", id, "error", err)
		return err
	}

	s.events.Publish(ctx, models.Event{Type: models.EventRecipeDeleted, UserID: userID, RecipeID: id})
	return nil
}

func (s *RecipeService) getRow(ctx context.Context, id int64) (*models.RecipeDB, error) {
	row, err := s.recipes.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "recipe_id", id, "error", err)
		return nil, err
	}
	return row, nil
}

func (s *RecipeService) saveImage(ctx context.Context, img *decodedImage) (string, error) {
	url, err := storeImage(ctx, s.images, img)
	if err != nil {
		logger.Log.Errorw("failed to store recipe image", "error", err)
		return "", err
	}
	return url, nil
}

// writeComposition replaces the ingredient rows and tag set of the recipe.
func (s *RecipeService) writeComposition(ctx context.Context, recipeID int64, req models.RecipeWriteRequest) error {
	if err := s.recipes.ReplaceIngredients(ctx, recipeID, req.Ingredients); err != nil {
		switch {
		case errors.Is(err, repositories.ErrReferenceNotFound):
			return fieldError("ingredients", "ingredient does not exist")
		case errors.Is(err, repositories.ErrOutOfRange):
			return fieldError("amount", "ingredient amount is out of range")
		}
		logger.Log.Errorw("failed to write recipe ingredients", "recipe_id", recipeID, "error", err)
		return err
	}
	if err := s.recipes.SetTags(ctx, recipeID, req.Tags); err != nil {
		if errors.Is(err, repositories.ErrReferenceNotFound) {
			return fieldError("tags", "tag does not exist")
		}
		logger.Log.Errorw("failed to write recipe tags", "recipe_id", recipeID, "error", err)
		return err
	}
	return nil
}

// represent builds the full representation of rows for viewerID.
func (s *RecipeService) represent(ctx context.Context, viewerID int64, rows []models.RecipeDB) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, len(rows))
	if len(rows) == 0 {
		return recipes, nil
	}

	ids := make([]int64, len(rows))
	var authorIDs []int64
	seenAuthor := make(map[int64]bool)
	for i, r := range rows {
		ids[i] = r.ID
		if !seenAuthor[r.AuthorID] {
			seenAuthor[r.AuthorID] = true
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	ingredientRows, err := s.recipes.GetIngredients(ctx, ids)
	if err != nil {
		logger.Log.Errorw("failed to load recipe ingredients", "error", err)
		return nil, err
	}
	ingredients := make(map[int64][]models.RecipeIngredient)
	for _, ri := range ingredientRows {
		ingredients[ri.RecipeID] = append(ingredients[ri.RecipeID], models.RecipeIngredient{
			ID:              ri.IngredientID,
			Name:            ri.Name,
			MeasurementUnit: ri.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}

	tagRows, err := s.recipes.GetTags(ctx, ids)
	if err != nil {
		logger.Log.Errorw("failed to load recipe tags", "error", err)
		return nil, err
	}
	tags := make(map[int64][]models.Tag)
	for _, rt := range tagRows {
		tags[rt.RecipeID] = append(tags[rt.RecipeID], models.Tag{ID: rt.ID, Name: rt.Name, Color: rt.Color, Slug: rt.Slug})
	}

	authorRows, err := s.authors.GetByIDs(ctx, authorIDs)
	if err != nil {
		logger.Log.Errorw("failed to load recipe authors", "error", err)
		return nil, err
	}
	authors := make(map[int64]models.UserDB, len(authorRows))
	for _, a := range authorRows {
		authors[a.ID] = a
	}

	followed, err := followedBy(ctx, s.subs, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	favorited, inCart := map[int64]bool{}, map[int64]bool{}
	if viewerID != 0 {
		if favorited, err = s.favorites.MarkedAmong(ctx, viewerID, ids); err != nil {
			logger.Log.Errorw("failed to load favorites", "user_id", viewerID, "error", err)
			return nil, err
		}
		if inCart, err = s.carts.MarkedAmong(ctx, viewerID, ids); err != nil {
			logger.Log.Errorw("failed to load shopping cart", "user_id", viewerID, "error", err)
			return nil, err
		}
	}

	for i, r := range rows {
		author, ok := authors[r.AuthorID]
		if !ok {
			return nil, fmt.Errorf("author %d of recipe %d not found", r.AuthorID, r.ID)
		}
		recipes[i] = models.Recipe{
			ID:               r.ID,
			Tags:             nonNil(tags[r.ID]),
			Author:           models.NewUser(author, followed[r.AuthorID]),
			Ingredients:      nonNil(ingredients[r.ID]),
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		}
	}
	return recipes, nil
}

// validateRecipe checks a create or update request and decodes its image.
// The returned image is nil when the request carries none.
func validateRecipe(req models.RecipeWriteRequest, imageRequired bool) (*decodedImage, error) {
	verr := validateStruct(req)

	if len(req.Ingredients) == 0 {
		verr.add("ingredients", "select at least one ingredient")
	}
	seenIngredient := make(map[int64]bool, len(req.Ingredients))
	for _, item := range req.Ingredients {
		if seenIngredient[item.ID] {
			verr.add("ingredients", "ingredients must be unique")
		}
		seenIngredient[item.ID] = true
		switch {
		case item.Amount <= 0:
			verr.add("amount", "ingredient amount must be greater than zero")
		case item.Amount > models.MaxIngredientAmount:
			verr.add("amount", fmt.Sprintf("ingredient amount must not exceed %d", models.MaxIngredientAmount))
		}
	}

	if len(req.Tags) == 0 {
		verr.add("tags", "select at least one tag")
	}
	seenTag := make(map[int64]bool, len(req.Tags))
	for _, id := range req.Tags {
		if seenTag[id] {
			verr.add("tags", "tags must be unique")
		}
		seenTag[id] = true
	}

	if req.CookingTime < models.MinCookingTime || req.CookingTime > models.MaxCookingTime {
		verr.add("cooking_time", fmt.Sprintf("cooking time must be between %d and %d minutes",
			models.MinCookingTime, models.MaxCookingTime))
	}

	var img *decodedImage
	switch {
	case req.Image != "":
		var err error
		if img, err = decodeImage(req.Image); err != nil {
			verr.add("image", err.Error())
		}
	case imageRequired:
		verr.add("image", "this field is required")
	}

	if err := verr.errOrNil(); err != nil {
		return nil, err
	}
	return img, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
