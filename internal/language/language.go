package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Undetermined is the ISO 639-2 code used when a stream carries no language.
const Undetermined = "und"

// ForFilename returns the code used as the language segment of a subtitle
// filename. Plex already stores ISO 639-2 codes, so recognized values pass
// through untouched; blanks become "und" and path separators are replaced.
func ForFilename(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return Undetermined
	}
	return strings.NewReplacer("/", "_", `\`, "_").Replace(code)
}

// DisplayName returns an English language name for any ISO 639 code.
// Returns "Unknown" for empty or undetermined input, or the uppercased code
// when x/text cannot resolve it.
func DisplayName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Undetermined {
		return "Unknown"
	}
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return strings.ToUpper(code)
}
