// Package sanitize provides HTML sanitization for user-generated content.
// Uses bluemonday to strip dangerous HTML (script tags, event handlers,
// javascript: URLs) from event and family descriptions before storage.
// Descriptions come from the mobile client's rich-text editor and are later
// rendered in the web client, so they must be stored clean.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Policies are initialized once via sync.Once for thread-safe lazy setup.
var (
	richPolicy  *bluemonday.Policy
	plainPolicy *bluemonday.Policy
	policyOnce  sync.Once
)

// initPolicies builds the shared sanitization policies on first use.
func initPolicies() {
	policyOnce.Do(func() {
		// UGC policy allows basic formatting (bold, italics, lists, links)
		// while stripping scripts, iframes, and event handler attributes.
		richPolicy = bluemonday.UGCPolicy()

		// Plain text fields (names, locations) permit no markup at all.
		plainPolicy = bluemonday.StrictPolicy()
	})
}

// HTML sanitizes user-generated rich text by stripping dangerous elements
// while preserving safe formatting tags.
//
// This MUST be called on all user-provided rich text before storing it in
// the database.
func HTML(input string) string {
	if input == "" {
		return ""
	}
	initPolicies()
	return richPolicy.Sanitize(input)
}

// Text strips all markup from a single-line text field (names, titles,
// locations) and trims surrounding whitespace.
func Text(input string) string {
	if input == "" {
		return ""
	}
	initPolicies()
	return strings.TrimSpace(plainPolicy.Sanitize(input))
}
