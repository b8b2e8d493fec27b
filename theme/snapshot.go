package theme

import (
	"encoding/json"
	"log"
	"maps"
	"slices"
)

type FeatureCard struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type GalleryImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type TextContent struct {
	HeroTitle         string         `json:"heroTitle"`
	HeroSubtitle      string         `json:"heroSubtitle"`
	HeroTitleFont     string         `json:"heroTitleFont"`
	HeroTitleColor    string         `json:"heroTitleColor"`
	HeroSubtitleFont  string         `json:"heroSubtitleFont"`
	HeroSubtitleColor string         `json:"heroSubtitleColor"`
	HistoryTitle      string         `json:"historyTitle"`
	HistoryText       string         `json:"historyText"`
	Features          []FeatureCard  `json:"features"`
	GalleryImages     []GalleryImage `json:"galleryImages"`
}

// Snapshot is one fully populated view of the theme.
type Snapshot struct {
	Colors      map[string]string `json:"colors"`
	Images      map[string]string `json:"images"`
	TextContent TextContent       `json:"textContent"`
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Colors = maps.Clone(s.Colors)
	out.Images = maps.Clone(s.Images)
	out.TextContent.Features = slices.Clone(s.TextContent.Features)
	out.TextContent.GalleryImages = slices.Clone(s.TextContent.GalleryImages)
	return out
}

// reduce builds a snapshot from raw rows. Keys the theme does not know are
// ignored and missing keys take their default.
func reduce(raw map[string]string) Snapshot {
	get := func(name string, g Group) string {
		f := byGroupName[g][name]
		if v, ok := raw[f.key()]; ok {
			return v
		}
		return f.def
	}

	snap := Snapshot{Colors: map[string]string{}, Images: map[string]string{}}
	for _, f := range fields {
		switch f.group {
		case GroupColors:
			snap.Colors[f.name] = get(f.name, f.group)
		case GroupImages:
			snap.Images[f.name] = get(f.name, f.group)
		}
	}

	text := func(name string) string { return get(name, GroupText) }
	snap.TextContent = TextContent{
		HeroTitle:         text("heroTitle"),
		HeroSubtitle:      text("heroSubtitle"),
		HeroTitleFont:     text("heroTitleFont"),
		HeroTitleColor:    text("heroTitleColor"),
		HeroSubtitleFont:  text("heroSubtitleFont"),
		HeroSubtitleColor: text("heroSubtitleColor"),
		HistoryTitle:      text("historyTitle"),
		HistoryText:       text("historyText"),
		Features:          parseList[FeatureCard]("features", text("features")),
		GalleryImages:     parseList[GalleryImage]("galleryImages", text("galleryImages")),
	}
	return snap
}

// parseList decodes a JSON array stored in the flat table. Broken values fall
// back to the field default.
func parseList[T any](name, value string) []T {
	var out []T
	if err := json.Unmarshal([]byte(value), &out); err == nil && out != nil {
		return out
	}
	log.Printf("[theme] %s holds invalid JSON, using default", name)
	out = nil
	_ = json.Unmarshal([]byte(byGroupName[GroupText][name].def), &out)
	if out == nil {
		out = []T{}
	}
	return out
}
