package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/repositories"
)

//go:generate mockgen -source=subscription.go -destination=subscription_mock.go -package=services

// SubscriptionRepository defines storage of follower → author edges.
type SubscriptionRepository interface {
	Add(ctx context.Context, userID, authorID int64) error
	Remove(ctx context.Context, userID, authorID int64) (bool, error)
	ListAuthors(ctx context.Context, userID int64, limit, offset int) ([]models.UserDB, error)
	CountAuthors(ctx context.Context, userID int64) (int, error)
}

// UserGetter reads a single user.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// AuthorRecipeReader reads recipe previews and counts per author.
type AuthorRecipeReader interface {
	List(ctx context.Context, f models.RecipeFilter) ([]models.RecipeDB, error)
	CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int, error)
}

// SubscriptionService manages who follows whom.
type SubscriptionService struct {
	users   UserGetter
	subs    SubscriptionRepository
	recipes AuthorRecipeReader
	events  EventPublisher
}

func NewSubscriptionService(
	users UserGetter,
	subs SubscriptionRepository,
	recipes AuthorRecipeReader,
	events EventPublisher,
) *SubscriptionService {
	return &SubscriptionService{
		users:   users,
		subs:    subs,
		recipes: recipes,
		events:  events,
	}
}

// Subscribe makes userID follow authorID. recipesLimit bounds the recipe
// preview of the result; 0 means no bound.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*models.Subscription, error) {
	author, err := s.getUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if userID == authorID {
		return nil, ErrSelfSubscription
	}

	if err := s.subs.Add(ctx, userID, authorID); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAlreadySubscribed
		}
		logger.Log.Errorw("failed to subscribe", "user_id", userID, "author_id", authorID, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, models.Event{Type: models.EventSubscriptionAdded, UserID: userID, AuthorID: authorID})

	subs, err := s.represent(ctx, []models.UserDB{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &subs[0], nil
}

// Unsubscribe removes the edge userID → authorID.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if _, err := s.getUser(ctx, authorID); err != nil {
		return err
	}
	if userID == authorID {
		return ErrSelfUnsubscription
	}

	removed, err := s.subs.Remove(ctx, userID, authorID)
	if err != nil {
		logger.Log.Errorw("failed to unsubscribe", "user_id", userID, "author_id", authorID, "error", err)
		return err
	}
	if !removed {
		return ErrNotSubscribed
	}

	s.events.Publish(ctx, models.Event{Type: models.EventSubscriptionRemoved, UserID: userID, AuthorID: authorID})
	return nil
}

// List returns one page of the authors userID follows and their total number.
func (s *SubscriptionService) List(ctx context.Context, userID int64, limit, offset, recipesLimit int) ([]models.Subscription, int, error) {
	count, err := s.subs.CountAuthors(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to count subscriptions", "user_id", userID, "error", err)
		return nil, 0, err
	}

	authors, err := s.subs.ListAuthors(ctx, userID, limit, offset)
	if err != nil {
		logger.Log.Errorw("failed to list subscriptions", "user_id", userID, "error", err)
		return nil, 0, err
	}

	subs, err := s.represent(ctx, authors, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return subs, count, nil
}

func (s *SubscriptionService) getUser(ctx context.Context, id int64) (*models.UserDB, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", id, "error", err)
		return nil, err
	}
	return user, nil
}

// represent builds followed-author entries. The caller follows every one of
// them, so is_subscribed is always true.
func (s *SubscriptionService) represent(ctx context.Context, authors []models.UserDB, recipesLimit int) ([]models.Subscription, error) {
	subs := make([]models.Subscription, len(authors))
	if len(authors) == 0 {
		return subs, nil
	}

	counts, err := s.recipes.CountByAuthors(ctx, userIDs(authors))
	if err != nil {
		logger.Log.Errorw("failed to count author recipes", "error", err)
		return nil, err
	}

	for i, author := range authors {
		authorID := author.ID
		rows, err := s.recipes.List(ctx, models.RecipeFilter{AuthorID: &authorID, Limit: recipesLimit})
		if err != nil {
			logger.Log.Errorw("failed to list author recipes", "author_id", authorID, "error", err)
			return nil, err
		}

		preview := make([]models.RecipeShort, len(rows))
		for j, r := range rows {
			preview[j] = models.NewRecipeShort(r)
		}

		subs[i] = models.Subscription{
			User:         models.NewUser(author, true),
			Recipes:      preview,
			RecipesCount: counts[authorID],
		}
	}
	return subs, nil
}
