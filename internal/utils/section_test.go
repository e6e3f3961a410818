package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSection(t *testing.T) {
	for _, s := range Sections {
		assert.True(t, IsValidSection(s), s)
	}
	assert.True(t, IsValidSection(" Lifestyle "))
	assert.False(t, IsValidSection("vacation"))
	assert.False(t, IsValidSection(""))
}

func TestNormalizeSection(t *testing.T) {
	assert.Equal(t, "event", NormalizeSection(" Event ", "lifestyle"))
	assert.Equal(t, "lifestyle", NormalizeSection("", "lifestyle"))
	assert.Equal(t, "lifestyle", NormalizeSection("   ", "lifestyle"))
}

func TestSectionPrefix(t *testing.T) {
	assert.Equal(t, "gallery/event/", SectionPrefix("event"))
	assert.Equal(t, "ceo/", SectionPrefix("ceo"))
}

func TestSectionFromKey(t *testing.T) {
	cases := map[string]string{
		"gallery/event/1700-a.jpg": "event",
		"ceo/1700-founder.jpg":     "ceo",
		"gallery/orphan.jpg":       "",
		"misc/whatever.jpg":        "",
	}
	for key, want := range cases {
		assert.Equal(t, want, SectionFromKey(key), key)
	}
}
