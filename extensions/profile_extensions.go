package extensions

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/db"
	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/models"
)

// EnsureProfile returns the user's profile document, creating a default one
// on first write if the auth system has not mirrored it yet.
func EnsureProfile(ctx context.Context, socialDb *db.SocialDb, userId string) (*models.UserModel, error) {
	user, err := socialDb.Users().FindOneById(ctx, userId)
	if err == nil {
		return user, nil
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	now := time.Now().UnixMilli()
	user = &models.UserModel{
		UserId:         userId,
		DisplayName:    "Anonymous",
		CreatedOn:      now,
		LastLogin:      now,
		LastActivityAt: now,
	}
	if err := socialDb.Users().Save(ctx, userId, user); err != nil {
		logger.Error("Failed creating profile", zap.String("userId", userId), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// DisplayNameOrDefault keeps notification text stable for half-initialized
// profiles.
func DisplayNameOrDefault(user *models.UserModel) string {
	if user == nil || len(user.DisplayName) == 0 {
		return "Anonymous"
	}
	return user.DisplayName
}
