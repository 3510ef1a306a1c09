package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// NewSanitizer returns the policy applied to rendered markdown. It starts
// from bluemonday's user-generated-content policy and adds what the
// converter emits: heading ids, highlight classes, task-list checkboxes and
// table cell alignment.
func NewSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)

	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).Globally()
	p.AllowAttrs("id").Matching(regexp.MustCompile(`^[\w:.-]+$`)).Globally()

	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	p.AllowStyles("text-align").MatchingEnum("left", "right", "center").OnElements("th", "td")

	p.AllowElements("mark")
	return p
}
