package domain

import (
	"errors"
	"testing"
	"time"
)

func newAsset(hash string) Asset {
	return Asset{
		OriginalName: "file.bin",
		ContentHash:  hash,
		SizeBytes:    10,
		MimeType:     "application/octet-stream",
		Category:     CategoryMisc,
		UploadedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewManifest(t *testing.T) {
	m := NewManifest()

	if m.Version != "1.0" {
		t.Errorf("expected version 1.0, got %q", m.Version)
	}
	if m.GeneratedAt != nil {
		t.Errorf("expected nil generated_at, got %v", m.GeneratedAt)
	}
	if m.Count() != 0 {
		t.Errorf("expected empty manifest, got %d entries", m.Count())
	}
}

func TestManifest_AddAndFind(t *testing.T) {
	m := NewManifest()

	if err := m.Add("misc/a.bin", newAsset("sha256:aaa")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, ok := m.FindByHash("sha256:aaa")
	if !ok || path != "misc/a.bin" {
		t.Errorf("FindByHash = (%q, %v), want (misc/a.bin, true)", path, ok)
	}

	if _, ok := m.FindByHash("sha256:bbb"); ok {
		t.Error("expected unknown hash to be absent")
	}
}

func TestManifest_AddRejectsDuplicates(t *testing.T) {
	m := NewManifest()
	_ = m.Add("misc/a.bin", newAsset("sha256:aaa"))

	err := m.Add("misc/b.bin", newAsset("sha256:aaa"))
	if !errors.Is(err, ErrDuplicateContent) {
		t.Errorf("expected ErrDuplicateContent, got %v", err)
	}

	err = m.Add("misc/a.bin", newAsset("sha256:ccc"))
	if !errors.Is(err, ErrPathTaken) {
		t.Errorf("expected ErrPathTaken, got %v", err)
	}

	if m.Count() != 1 {
		t.Errorf("expected 1 entry after rejected inserts, got %d", m.Count())
	}
	if got := m.Assets["misc/a.bin"].ContentHash; got != "sha256:aaa" {
		t.Errorf("existing entry was overwritten: %s", got)
	}
}

func TestManifest_IndexBuiltFromDecodedAssets(t *testing.T) {
	// Simulates a manifest decoded from JSON: no index yet
	m := &Manifest{
		Version: ManifestVersion,
		Assets: map[string]Asset{
			"video/clip.mp4": newAsset("sha256:111"),
		},
	}

	path, ok := m.FindByHash("sha256:111")
	if !ok || path != "video/clip.mp4" {
		t.Errorf("FindByHash = (%q, %v), want (video/clip.mp4, true)", path, ok)
	}
}

func TestManifest_ContainsName(t *testing.T) {
	m := NewManifest()
	_ = m.Add("hero/afromations_flag_pick.gif", newAsset("sha256:1"))

	if !m.ContainsName("afromations_flag_pick.gif") {
		t.Error("expected name to be found")
	}
	if !m.ContainsName("flag_pick") {
		t.Error("expected substring to be found")
	}
	if m.ContainsName("missing.png") {
		t.Error("expected missing name to be absent")
	}
}

func TestManifest_CloneIsIndependent(t *testing.T) {
	m := NewManifest()
	a := newAsset("sha256:1")
	a.Dimensions = &Dimensions{Width: 10, Height: 20}
	_ = m.Add("images/a.png", a)

	c := m.Clone()
	_ = c.Add("images/b.png", newAsset("sha256:2"))
	c.Assets["images/a.png"].Dimensions.Width = 99

	if m.Count() != 1 {
		t.Errorf("clone insert leaked into original: %d entries", m.Count())
	}
	if m.Assets["images/a.png"].Dimensions.Width != 10 {
		t.Error("clone shares dimensions with original")
	}
	if _, ok := m.FindByHash("sha256:2"); ok {
		t.Error("clone index leaked into original")
	}
}

func TestManifest_EntriesSorted(t *testing.T) {
	m := NewManifest()
	_ = m.Add("video/z.mp4", newAsset("sha256:1"))
	_ = m.Add("audio/a.mp3", newAsset("sha256:2"))
	_ = m.Add("images/m.png", newAsset("sha256:3"))

	entries := m.Entries()
	want := []string{"audio/a.mp3", "images/m.png", "video/z.mp4"}
	for i, e := range entries {
		if e.Path != want[i] {
			t.Errorf("entry %d = %s, want %s", i, e.Path, want[i])
		}
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory("brand"); err != nil || c != CategoryBrand {
		t.Errorf("ParseCategory(brand) = (%q, %v)", c, err)
	}
	if _, err := ParseCategory("stickers"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestCategory_IsImageLike(t *testing.T) {
	tests := []struct {
		category Category
		want     bool
	}{
		{CategoryImages, true},
		{CategoryHero, true},
		{CategoryBrand, true},
		{CategoryIcons, true},
		{CategoryVideo, false},
		{CategoryMisc, false},
	}

	for _, tt := range tests {
		if got := tt.category.IsImageLike(); got != tt.want {
			t.Errorf("%s.IsImageLike() = %v, want %v", tt.category, got, tt.want)
		}
	}
}
