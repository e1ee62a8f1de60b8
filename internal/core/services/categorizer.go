package services

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/pkg/config"
)

// extensionCategories maps lowercased extensions to categories
var extensionCategories = map[string]domain.Category{
	".gif": domain.CategoryHero, // animations default to hero

	".png":  domain.CategoryImages,
	".jpg":  domain.CategoryImages,
	".jpeg": domain.CategoryImages,
	".webp": domain.CategoryImages,

	".svg": domain.CategoryIcons,
	".ico": domain.CategoryIcons,

	".mp4":  domain.CategoryVideo,
	".mov":  domain.CategoryVideo,
	".avi":  domain.CategoryVideo,
	".webm": domain.CategoryVideo,
	".mkv":  domain.CategoryVideo,

	".mp3": domain.CategoryAudio,
	".wav": domain.CategoryAudio,
	".m4a": domain.CategoryAudio,
	".ogg": domain.CategoryAudio,

	".pdf": domain.CategoryDocuments,
	".txt": domain.CategoryDocuments,
	".md":  domain.CategoryDocuments,

	".ttf":   domain.CategoryFonts,
	".otf":   domain.CategoryFonts,
	".woff":  domain.CategoryFonts,
	".woff2": domain.CategoryFonts,

	".psd":    domain.CategoryDesign,
	".ai":     domain.CategoryDesign,
	".sketch": domain.CategoryDesign,
	".fig":    domain.CategoryDesign,
}

type nameRule struct {
	substr   string
	re       *regexp.Regexp
	category domain.Category
}

func (r nameRule) matches(lowerName string) bool {
	if r.re != nil {
		return r.re.MatchString(lowerName)
	}
	return strings.Contains(lowerName, r.substr)
}

// Categorizer maps filenames to categories. It is safe for concurrent use.
type Categorizer struct {
	rules      []nameRule
	extensions map[string]domain.Category
}

// NewCategorizer builds a categorizer from name rules (checked in order)
// and extra extension mappings layered over the built-in table.
func NewCategorizer(rules []config.NameRule, extra map[string]string) (*Categorizer, error) {
	c := &Categorizer{
		extensions: make(map[string]domain.Category, len(extensionCategories)+len(extra)),
	}

	for ext, cat := range extensionCategories {
		c.extensions[ext] = cat
	}
	for ext, name := range extra {
		cat, err := domain.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("extension %s: %w", ext, err)
		}
		c.extensions[strings.ToLower(ext)] = cat
	}

	for _, r := range rules {
		cat, err := domain.ParseCategory(r.Category)
		if err != nil {
			return nil, fmt.Errorf("name rule %q: %w", r.Pattern, err)
		}
		rule := nameRule{category: cat}
		if r.Regex {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("name rule %q: %w", r.Pattern, err)
			}
			rule.re = re
		} else {
			rule.substr = strings.ToLower(r.Pattern)
		}
		c.rules = append(c.rules, rule)
	}

	return c, nil
}

// NewDefaultCategorizer uses the built-in name rules
func NewDefaultCategorizer() *Categorizer {
	c, err := NewCategorizer(config.DefaultNameRules(), nil)
	if err != nil {
		panic(err) // built-in rules are static
	}
	return c
}

// Categorize returns the category for a filename. Name rules win over the extension.
func (c *Categorizer) Categorize(filename string) domain.Category {
	lower := strings.ToLower(filepath.Base(filename))

	for _, r := range c.rules {
		if r.matches(lower) {
			return r.category
		}
	}

	if cat, ok := c.extensions[strings.ToLower(filepath.Ext(lower))]; ok {
		return cat
	}
	return domain.CategoryMisc
}
