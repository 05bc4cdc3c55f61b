// Package htmlsanitize cleans user-supplied club and event text before it is
// stored. Descriptions may carry light formatting; single-line fields such as
// names, titles and locations are reduced to plain text.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richOnce   sync.Once
	richPolicy *bluemonday.Policy

	plainOnce   sync.Once
	plainPolicy *bluemonday.Policy
)

func rich() *bluemonday.Policy {
	richOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "br", "strong", "b", "em", "i", "u", "s",
			"ul", "ol", "li", "blockquote", "h3", "h4")
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		richPolicy = p
	})
	return richPolicy
}

func plain() *bluemonday.Policy {
	plainOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return plainPolicy
}

// Sanitize returns s with unsafe markup removed, keeping basic formatting.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(rich().Sanitize(s))
}

// PlainText strips all markup from s and trims the result.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(plain().Sanitize(s))
}
