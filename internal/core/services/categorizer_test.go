package services

import (
	"testing"

	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/pkg/config"
)

func TestCategorizer_Defaults(t *testing.T) {
	c := NewDefaultCategorizer()

	tests := []struct {
		filename string
		expected domain.Category
	}{
		{"photo.png", domain.CategoryImages},
		{"PHOTO.JPEG", domain.CategoryImages},
		{"banner.webp", domain.CategoryImages},
		{"icon.svg", domain.CategoryIcons},
		{"favicon.ico", domain.CategoryBrand},
		{"clip.mp4", domain.CategoryVideo},
		{"raw.MKV", domain.CategoryVideo},
		{"song.mp3", domain.CategoryAudio},
		{"voice.m4a", domain.CategoryAudio},
		{"brief.pdf", domain.CategoryDocuments},
		{"notes.md", domain.CategoryDocuments},
		{"Inter.woff2", domain.CategoryFonts},
		{"mock.fig", domain.CategoryDesign},
		{"poster.psd", domain.CategoryDesign},
		{"loop.gif", domain.CategoryHero},
		{"afromations_flag_pick.gif", domain.CategoryHero},
		{"logo.png", domain.CategoryBrand},
		{"Company-LOGO.svg", domain.CategoryBrand},
		{"archive.zip", domain.CategoryMisc},
		{"Makefile", domain.CategoryMisc},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := c.Categorize(tt.filename); got != tt.expected {
				t.Errorf("Categorize(%q) = %q, want %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestCategorizer_Deterministic(t *testing.T) {
	c := NewDefaultCategorizer()

	for i := 0; i < 100; i++ {
		if got := c.Categorize("mylogotype.png"); got != domain.CategoryBrand {
			t.Fatalf("iteration %d: got %q", i, got)
		}
	}
}

func TestCategorizer_RuleOrder(t *testing.T) {
	c, err := NewCategorizer([]config.NameRule{
		{Pattern: "hero", Category: "hero"},
		{Pattern: "logo", Category: "brand"},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.Categorize("hero-logo.png"); got != domain.CategoryHero {
		t.Errorf("expected first rule to win, got %q", got)
	}
}

func TestCategorizer_RegexRuleAnchorsMatch(t *testing.T) {
	c, err := NewCategorizer([]config.NameRule{
		{Pattern: `^logo(\.|_|-|$)`, Category: "brand", Regex: true},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.Categorize("logo.png"); got != domain.CategoryBrand {
		t.Errorf("logo.png: got %q, want brand", got)
	}
	if got := c.Categorize("mylogotype.png"); got != domain.CategoryImages {
		t.Errorf("mylogotype.png: got %q, want images", got)
	}
}

func TestCategorizer_ExtraExtensions(t *testing.T) {
	c, err := NewCategorizer(nil, map[string]string{".HEIC": "images", ".gif": "images"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.Categorize("shot.heic"); got != domain.CategoryImages {
		t.Errorf("shot.heic: got %q, want images", got)
	}
	if got := c.Categorize("loop.gif"); got != domain.CategoryImages {
		t.Errorf("extra mapping should override built-in table, got %q", got)
	}
}

func TestCategorizer_InvalidConfig(t *testing.T) {
	if _, err := NewCategorizer([]config.NameRule{{Pattern: "x", Category: "nope"}}, nil); err == nil {
		t.Error("expected error for unknown category")
	}
	if _, err := NewCategorizer([]config.NameRule{{Pattern: "(", Category: "misc", Regex: true}}, nil); err == nil {
		t.Error("expected error for invalid regex")
	}
	if _, err := NewCategorizer(nil, map[string]string{".x": "nope"}); err == nil {
		t.Error("expected error for unknown extension category")
	}
}
