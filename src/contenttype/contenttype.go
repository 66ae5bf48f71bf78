// Package contenttype classifies a free-text prompt into the kind of
// marketing copy the user is asking for.
package contenttype

import "strings"

type ContentType string

const (
	Blog     ContentType = "blog"
	Facebook ContentType = "facebook"
	Script   ContentType = "script"
)

// Keyword sets checked in priority order; the first set with a hit wins.
var keywordSets = []struct {
	kind     ContentType
	keywords []string
}{
	{Blog, []string{"blog", "article", "post"}},
	{Facebook, []string{"facebook", "social media", "fb"}},
	{Script, []string{"script", "video", "dialogue"}},
}

// Detect maps a prompt to a content type by case-insensitive substring
// match. Prompts matching no keyword default to Blog.
func Detect(prompt string) ContentType {
	lower := strings.ToLower(prompt)
	for _, set := range keywordSets {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.kind
			}
		}
	}
	return Blog
}
