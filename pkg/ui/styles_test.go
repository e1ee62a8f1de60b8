package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMove(t *testing.T) {
	live := FormatMove("logo.png", "brand/logo.png", false)
	assert.True(t, strings.Contains(live, "Moved:"))
	assert.True(t, strings.Contains(live, "brand/logo.png"))

	planned := FormatMove("logo.png", "brand/logo.png", true)
	assert.True(t, strings.Contains(planned, "Would move:"))
	assert.False(t, strings.Contains(planned, "Moved:"))
}

func TestFormatSkip(t *testing.T) {
	line := FormatSkip("clip_copy.mp4", "duplicate of video/clip.mp4")
	assert.True(t, strings.Contains(line, "Skipping: clip_copy.mp4 (duplicate of video/clip.mp4)"))
}

func TestFormatChecklistItem(t *testing.T) {
	assert.True(t, strings.Contains(FormatChecklistItem("hero.gif", "Hero media", true), "[FOUND]"))

	missing := FormatChecklistItem("hero.gif", "Hero media", false)
	assert.True(t, strings.Contains(missing, "[MISSING]"))
	assert.True(t, strings.Contains(missing, "- Hero media"))
}

func TestSetTheme_KeepsStylesUsable(t *testing.T) {
	for _, theme := range []string{"dark", "light", "auto"} {
		SetTheme(theme)
		assert.True(t, strings.Contains(FormatSuccess("done"), "done"), theme)
	}
}
