package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilterCleanText(t *testing.T) {
	f := NewContentFilter()

	ok, reason := f.Check("Lovely staff, my mother settled in within a week.")
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestContentFilterEmptyText(t *testing.T) {
	f := NewContentFilter()

	ok, _ := f.Check("")
	assert.True(t, ok)
}

func TestContentFilterBannedWord(t *testing.T) {
	f := NewContentFilter()

	ok, reason := f.Check("this place is a total scam")
	assert.False(t, ok)
	assert.Equal(t, "inappropriate_language", reason)
}

func TestContentFilterBannedWordNeedsBoundary(t *testing.T) {
	f := NewContentFilter()

	// "scampi" contains "scam" but is not a match on a word boundary.
	ok, _ := f.Check("the scampi at dinner was excellent")
	assert.True(t, ok)
}

func TestContentFilterURL(t *testing.T) {
	f := NewContentFilter()

	ok, reason := f.Check("check out https://example.com/deals")
	assert.False(t, ok)
	assert.Equal(t, "url_not_allowed", reason)

	ok, reason = f.Check("visit www.example.com now")
	assert.False(t, ok)
	assert.Equal(t, "url_not_allowed", reason)
}

func TestContentFilterPhoneNumber(t *testing.T) {
	f := NewContentFilter()

	ok, reason := f.Check("call me at 555-123-4567")
	assert.False(t, ok)
	assert.Equal(t, "contact_info_not_allowed", reason)
}

func TestContentFilterRepeatedChars(t *testing.T) {
	f := NewContentFilter()

	ok, reason := f.Check("best place everrrr!!!!!!")
	assert.False(t, ok)
	assert.Equal(t, "spam_detected", reason)
}

func TestRejectionMessageFallback(t *testing.T) {
	f := NewContentFilter()

	assert.Equal(t, "URLs and web links are not allowed.", f.RejectionMessage("url_not_allowed"))
	assert.Equal(t, "Your post does not meet our content guidelines.", f.RejectionMessage("something_else"))
}
