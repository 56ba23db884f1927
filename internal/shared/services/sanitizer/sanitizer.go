// Package sanitizer strips unsafe markup from user-written bodies.
package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"
)

// Service keeps the formatting the rich-text editor produces and drops
// scripts, handlers and foreign attributes.
type Service struct {
	policy *bluemonday.Policy
}

func New() *Service {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre", "p")
	policy.AllowAttrs("style").OnElements("span", "p")

	return &Service{policy: policy}
}

func (s *Service) Sanitize(body string) string {
	return s.policy.Sanitize(body)
}
