package service

import (
	"context"
	"regexp"
	"time"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/extensions"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/store"
)

var usernameExpr = regexp.MustCompile(`^\w{3,30}$`)

type UserService struct {
	db *db.SocialDb
}

func NewUserService(socialDb *db.SocialDb) *UserService {
	return &UserService{db: socialDb}
}

func (s *UserService) GetProfile(ctx context.Context, userId string) (*models.UserModel, error) {
	if err := validateIds(userId); err != nil {
		return nil, err
	}
	return s.db.Users().FindOneById(ctx, userId)
}

func (s *UserService) EnsureProfile(ctx context.Context, userId string) (*models.UserModel, error) {
	if err := validateIds(userId); err != nil {
		return nil, err
	}
	return extensions.EnsureProfile(ctx, s.db, userId)
}

type ProfileInput struct {
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
	Bio         string `json:"bio"`
	PhotoUrl    string `json:"photoUrl"`
}

// UpdateProfile patches only the identity fields; counters are never
// writable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, userId string, input ProfileInput) (*models.UserModel, error) {
	if err := validateIds(userId); err != nil {
		return nil, err
	}
	if len(input.Username) > 0 && !usernameExpr.MatchString(input.Username) {
		return nil, apperr.New(apperr.KindInvalidInput, "username must be 3-30 word characters")
	}

	if _, err := extensions.EnsureProfile(ctx, s.db, userId); err != nil {
		return nil, err
	}

	patch := store.Document{"lastActivityAt": time.Now().UnixMilli()}
	if len(input.DisplayName) > 0 {
		patch["displayName"] = input.DisplayName
	}
	if len(input.Username) > 0 {
		patch["username"] = input.Username
	}
	if len(input.Bio) > 0 {
		patch["bio"] = input.Bio
	}
	if len(input.PhotoUrl) > 0 {
		patch["photoUrl"] = input.PhotoUrl
	}
	if err := s.db.Store().Update(ctx, db.CollUsers, userId, patch); err != nil {
		return nil, err
	}
	return s.db.Users().FindOneById(ctx, userId)
}

// RecordLogin stamps lastLogin and lastActivityAt, creating the profile on
// first sight.
func (s *UserService) RecordLogin(ctx context.Context, userId string) error {
	if _, err := extensions.EnsureProfile(ctx, s.db, userId); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	return s.db.Store().Update(ctx, db.CollUsers, userId, store.Document{
		"lastLogin":      now,
		"lastActivityAt": now,
	})
}
