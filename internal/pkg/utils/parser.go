package utils

import (
	"strconv"
	"strings"
)

// NormalizeResponseText lowercases and trims a raw textual answer before
// alias resolution and response-map lookup.
func NormalizeResponseText(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseNumericAnswer attempts to parse a raw string as a numeric answer.
// Integer-valued floats ("2.0") are accepted and collapse to their integer
// value.
func ParseNumericAnswer(raw string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// IsWholeNumber reports whether a float carries no fractional part.
func IsWholeNumber(value float64) bool {
	return value == float64(int64(value))
}

// SanitizeIdentifier makes an identifier safe for use as a directory name.
func SanitizeIdentifier(id string) string {
	replacer := strings.NewReplacer("/", "_", ":", "_")
	return replacer.Replace(id)
}

// VersionToFilename converts a spec version to its registry filename
// (1.0.0 -> 1-0-0.json).
func VersionToFilename(version string) string {
	return strings.ReplaceAll(version, ".", "-") + ".json"
}

// FilenameToVersion converts a registry filename stem back to a version
// (1-0-0 -> 1.0.0).
func FilenameToVersion(stem string) string {
	return strings.ReplaceAll(stem, "-", ".")
}
