package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/repositories"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=services

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.UserDB, error)
	List(ctx context.Context, limit, offset int) ([]models.UserDB, error)
	Count(ctx context.Context) (int, error)
}

// FollowChecker tells which authors a user follows.
type FollowChecker interface {
	FollowedAmong(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error)
}

// UserService serves user profiles as seen by a viewer.
// A viewer id of 0 means an anonymous caller.
type UserService struct {
	users UserReader
	subs  FollowChecker
}

func NewUserService(users UserReader, subs FollowChecker) *UserService {
	return &UserService{users: users, subs: subs}
}

// Get returns user id with is_subscribed set for viewerID.
func (s *UserService) Get(ctx context.Context, viewerID, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", id, "error", err)
		return nil, err
	}

	users, err := s.represent(ctx, viewerID, []models.UserDB{*user})
	if err != nil {
		return nil, err
	}
	return &users[0], nil
}

// List returns one page of users and the total number of users.
func (s *UserService) List(ctx context.Context, viewerID int64, limit, offset int) ([]models.User, int, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count users", "error", err)
		return nil, 0, err
	}

	rows, err := s.users.List(ctx, limit, offset)
	if err != nil {
		logger.Log.Errorw("failed to list users", "error", err)
		return nil, 0, err
	}

	users, err := s.represent(ctx, viewerID, rows)
	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

func (s *UserService) represent(ctx context.Context, viewerID int64, rows []models.UserDB) ([]models.User, error) {
	followed, err := followedBy(ctx, s.subs, viewerID, userIDs(rows))
	if err != nil {
		return nil, err
	}

	users := make([]models.User, len(rows))
	for i, u := range rows {
		users[i] = models.NewUser(u, followed[u.ID])
	}
	return users, nil
}

// followedBy returns which of authorIDs viewerID follows. Anonymous viewers
// follow nobody.
func followedBy(ctx context.Context, subs FollowChecker, viewerID int64, authorIDs []int64) (map[int64]bool, error) {
	if viewerID == 0 || len(authorIDs) == 0 {
		return map[int64]bool{}, nil
	}
	followed, err := subs.FollowedAmong(ctx, viewerID, authorIDs)
	if err != nil {
		logger.Log.Errorw("failed to load subscriptions", "user_id", viewerID, "error", err)
		return nil, err
	}
	return followed, nil
}

func userIDs(users []models.UserDB) []int64 {
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
