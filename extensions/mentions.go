package extensions

import (
	"regexp"

	"github.com/thoas/go-funk"
)

const mentionExpr = `@(\w+)`

var mentionRegex = regexp.MustCompile(mentionExpr)

// ExtractMentions pulls the @username tokens out of comment text, without
// the leading @, de-duplicated in order of first appearance.
func ExtractMentions(content string) []string {
	matches := mentionRegex.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	usernames := funk.Map(matches, func(m []string) string {
		return m[1]
	}).([]string)
	return funk.UniqString(usernames)
}
