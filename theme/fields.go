package theme

import (
	"strings"
	"unicode"
)

type Group string

const (
	GroupColors Group = "colors"
	GroupImages Group = "images"
	GroupText   Group = "textContent"
)

var groupOrder = []Group{GroupColors, GroupImages, GroupText}

type field struct {
	group Group
	name  string
	def   string
	// json marks values stored as a JSON document inside the flat table.
	json bool
}

func (f field) key() string { return CamelToSnake(f.name) }

const (
	defaultFeatures = `[{"icon":"leaf","title":"Produits frais","description":"Une cuisine de saison avec des producteurs locaux."},` +
		`{"icon":"chef","title":"Fait maison","description":"Tout est préparé sur place, chaque jour."},` +
		`{"icon":"wine","title":"Cave choisie","description":"Une sélection de vins pour accompagner chaque plat."}]`
	defaultGallery = `[]`
)

var fields = []field{
	{group: GroupColors, name: "backgroundColor", def: "#fdf8f3"},
	{group: GroupColors, name: "textColor", def: "#2d2a26"},
	{group: GroupColors, name: "buttonColor", def: "#b5542c"},
	{group: GroupColors, name: "buttonTextColor", def: "#ffffff"},
	{group: GroupColors, name: "headerFooterBackground", def: "#1f1b16"},
	{group: GroupColors, name: "featureCardBackground", def: "#ffffff"},

	{group: GroupImages, name: "homeImageUrl", def: "/images/home-hero.jpg"},
	{group: GroupImages, name: "menuHeaderImageUrl", def: "/images/menu-header.jpg"},
	{group: GroupImages, name: "eventsHeaderImageUrl", def: "/images/events-header.jpg"},
	{group: GroupImages, name: "contactHeaderImageUrl", def: "/images/contact-header.jpg"},
	{group: GroupImages, name: "historyImageUrl", def: "/images/history.jpg"},

	{group: GroupText, name: "heroTitle", def: "Bienvenue"},
	{group: GroupText, name: "heroSubtitle", def: "Une cuisine de saison au cœur de la ville"},
	{group: GroupText, name: "heroTitleFont", def: "Playfair Display"},
	{group: GroupText, name: "heroTitleColor", def: "#ffffff"},
	{group: GroupText, name: "heroSubtitleFont", def: "Inter"},
	{group: GroupText, name: "heroSubtitleColor", def: "#f3f3f3"},
	{group: GroupText, name: "historyTitle", def: "Notre Histoire"},
	{group: GroupText, name: "historyText", def: "Depuis notre ouverture, nous cuisinons des produits frais pour nos voisins et nos visiteurs."},
	{group: GroupText, name: "features", def: defaultFeatures, json: true},
	{group: GroupText, name: "galleryImages", def: defaultGallery, json: true},
}

var byGroupName = func() map[Group]map[string]field {
	out := map[Group]map[string]field{}
	for _, f := range fields {
		if out[f.group] == nil {
			out[f.group] = map[string]field{}
		}
		out[f.group][f.name] = f
	}
	return out
}()

var byKey = func() map[string]field {
	out := make(map[string]field, len(fields))
	for _, f := range fields {
		out[f.key()] = f
	}
	return out
}()

// Keys lists every storage key the theme reads, in field table order.
func Keys() []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.key())
	}
	return out
}

// Defaults returns the stored form of every default value.
func Defaults() map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.key()] = f.def
	}
	return out
}

// CamelToSnake maps a field name such as "homeImageUrl" to its storage key
// "home_image_url".
func CamelToSnake(s string) string {
	return splitCamel(s, '_')
}

func camelToKebab(s string) string {
	return splitCamel(s, '-')
}

func splitCamel(s string, sep rune) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune(sep)
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
