package domain

import "fmt"

// Category is one of the fixed labels partitioning the output tree
type Category string

const (
	CategoryHero      Category = "hero"
	CategoryImages    Category = "images"
	CategoryIcons     Category = "icons"
	CategoryVideo     Category = "video"
	CategoryAudio     Category = "audio"
	CategoryDocuments Category = "documents"
	CategoryFonts     Category = "fonts"
	CategoryDesign    Category = "design"
	CategoryBrand     Category = "brand"
	CategoryMisc      Category = "misc"
)

// AllCategories lists every category in display order
func AllCategories() []Category {
	return []Category{
		CategoryHero,
		CategoryImages,
		CategoryIcons,
		CategoryVideo,
		CategoryAudio,
		CategoryDocuments,
		CategoryFonts,
		CategoryDesign,
		CategoryBrand,
		CategoryMisc,
	}
}

// ParseCategory validates a category label
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// IsImageLike reports whether files in this category may be raster images
func (c Category) IsImageLike() bool {
	switch c {
	case CategoryHero, CategoryImages, CategoryIcons, CategoryBrand:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
