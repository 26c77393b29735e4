package service

import (
	"strings"
	"unicode"

	"github.com/openbloom/bloom/apperr"
)

// All input validations should be added here. They run before any store
// call, so a rejected request never produces a partial write.

const (
	MaxTitleLength   = 200
	MaxContentLength = 10000
	MaxTags          = 5
)

func validateParticipants(followerId, targetId string) error {
	if len(followerId) == 0 || len(targetId) == 0 {
		return apperr.New(apperr.KindInvalidInput, "invalid participant ids")
	}
	if followerId == targetId {
		return apperr.New(apperr.KindInvalidInput, "cannot follow yourself")
	}
	return nil
}

func validateIds(ids ...string) error {
	for _, id := range ids {
		if len(id) == 0 {
			return apperr.New(apperr.KindInvalidInput, "missing id")
		}
	}
	return nil
}

func validatePostInput(title, content string, tags []string) error {
	if len(strings.TrimSpace(content)) == 0 {
		return apperr.New(apperr.KindInvalidInput, "post content is empty")
	}
	if len(content) > MaxContentLength {
		return apperr.New(apperr.KindInvalidInput, "post content is too long")
	}
	if len(title) > MaxTitleLength {
		return apperr.New(apperr.KindInvalidInput, "post title is too long")
	}
	if len(tags) > MaxTags {
		return apperr.Newf(apperr.KindInvalidInput, "too many tags: at most %d allowed", MaxTags)
	}
	return nil
}

func validateCommentContent(content string) error {
	if len(strings.TrimSpace(content)) == 0 {
		return apperr.New(apperr.KindInvalidInput, "comment content is empty")
	}
	if len(content) > MaxContentLength {
		return apperr.New(apperr.KindInvalidInput, "comment content is too long")
	}
	return nil
}

// normalizeTags lowercases tags and strips everything non-alphanumeric;
// tags that normalize to nothing are dropped.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		var b strings.Builder
		for _, r := range strings.ToLower(strings.TrimSpace(tag)) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return out
}
