package theme

import (
	"strings"
)

// cssVars lists the snapshot fields exposed as custom properties.
var cssVars = []string{
	"backgroundColor", "textColor", "buttonColor", "buttonTextColor",
	"headerFooterBackground", "featureCardBackground",
}

var cssTextVars = []string{"heroTitleFont", "heroTitleColor", "heroSubtitleFont", "heroSubtitleColor"}

func renderCSS(s Snapshot) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range cssVars {
		writeVar(&b, name, s.Colors[name])
	}
	t := s.TextContent
	text := map[string]string{
		"heroTitleFont":     t.HeroTitleFont,
		"heroTitleColor":    t.HeroTitleColor,
		"heroSubtitleFont":  t.HeroSubtitleFont,
		"heroSubtitleColor": t.HeroSubtitleColor,
	}
	for _, name := range cssTextVars {
		writeVar(&b, name, text[name])
	}
	b.WriteString("}\n")
	return b.String()
}

func writeVar(b *strings.Builder, name, value string) {
	b.WriteString("  --")
	b.WriteString(camelToKebab(name))
	b.WriteString(": ")
	b.WriteString(cssValue(value))
	b.WriteString(";\n")
}

// cssValue drops characters that would end the declaration or the block.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(v))
}
