package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyAlwaysCarriesWideTag(t *testing.T) {
	key := NewKey("Article", "limit=10&page=1")
	assert.Equal(t, []Tag{Wide("Article")}, key.Tags)

	scoped := NewKey("Article", "", Scoped("Article", "42"))
	assert.Equal(t, []Tag{Wide("Article"), Scoped("Article", "42")}, scoped.Tags)
}

func TestNewKeyDeduplicatesWideTag(t *testing.T) {
	key := NewKey("Analytics", "period=daily", Wide("Analytics"))
	assert.Equal(t, []Tag{Wide("Analytics")}, key.Tags)
}

func TestKeyIdentity(t *testing.T) {
	a := NewKey("Article", "page=1&status=draft")
	b := NewKey("Article", "page=1&status=draft", Scoped("Article", "7"))
	assert.Equal(t, a.ID(), b.ID())

	c := NewKey("Article", "page=2&status=draft")
	assert.NotEqual(t, a.ID(), c.ID())

	d := NewKey("Analytics", "page=1&status=draft")
	assert.NotEqual(t, a.ID(), d.ID())
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "Article", Wide("Article").String())
	assert.Equal(t, "Article/42", Scoped("Article", "42").String())
	assert.False(t, Wide("Article").IsScoped())
	assert.True(t, Scoped("Article", "42").IsScoped())
}
