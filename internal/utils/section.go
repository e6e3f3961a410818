package utils

import "strings"

// Gallery sections. "ceo" is special cased in storage paths: its objects
// live at top-level ceo/ instead of under gallery/.
var Sections = []string{"lifestyle", "event", "lovelife", "family", "outdoor", "portrait", "ceo"}

const CEOSection = "ceo"

// IsValidSection reports whether name is one of the known gallery sections.
func IsValidSection(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Sections {
		if s == name {
			return true
		}
	}
	return false
}

// NormalizeSection lowercases and trims name, substituting fallback when
// name is empty.
func NormalizeSection(name, fallback string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fallback
	}
	return name
}

// SectionPrefix returns the object-key prefix for a section listing.
func SectionPrefix(section string) string {
	if section == CEOSection {
		return "ceo/"
	}
	return "gallery/" + section + "/"
}

// SectionFromKey derives the section from an object key, or "" when the key
// does not belong to a known layout. Keys look like
// gallery/<section>/<ts>-<name> or ceo/<ts>-<name>.
func SectionFromKey(key string) string {
	parts := strings.Split(key, "/")
	if len(parts) >= 2 && parts[0] == CEOSection {
		return CEOSection
	}
	if len(parts) >= 3 && parts[0] == "gallery" {
		return parts[1]
	}
	return ""
}
