package cricket

import (
	"regexp"
	"strconv"
	"strings"
)

// teamToCountry maps normalized team names and short codes to ISO country
// codes for flag lookups.
var teamToCountry = map[string]string{
	"india":                "in",
	"australia":            "au",
	"england":              "gb",
	"south africa":         "za",
	"new zealand":          "nz",
	"pakistan":             "pk",
	"sri lanka":            "lk",
	"bangladesh":           "bd",
	"west indies":          "jm",
	"afghanistan":          "af",
	"ireland":              "ie",
	"zimbabwe":             "zw",
	"netherlands":          "nl",
	"scotland":             "gb",
	"nepal":                "np",
	"oman":                 "om",
	"namibia":              "na",
	"united arab emirates": "ae",
	"uae":                  "ae",
	"italy":                "it",
	"qatar":                "qa",
	"bahrain":              "bh",
	"usa":                  "us",
	"united states":        "us",
	"canada":               "ca",

	"ind": "in",
	"aus": "au",
	"eng": "gb",
	"rsa": "za",
	"sa":  "za",
	"nz":  "nz",
	"pak": "pk",
	"sl":  "lk",
	"ban": "bd",
	"wi":  "jm",
	"afg": "af",
	"ire": "ie",
	"zim": "zw",
	"ned": "nl",
	"sco": "gb",
	"nep": "np",
	"nam": "na",
	"oma": "om",
	"ita": "it",
	"qat": "qa",
	"bhr": "bh",
	"can": "ca",
	"us":  "us",
}

var (
	womenSuffixRe = regexp.MustCompile(`\s*women\s*`)
	u19SuffixRe   = regexp.MustCompile(`\s*u-?19\s*`)
	aTeamSuffixRe = regexp.MustCompile(`\s*a$`)
)

// normalizeFlagName folds squad variants (Women, U-19, "A" sides) onto
// the parent country before the flag lookup.
func normalizeFlagName(name string) string {
	normalized := strings.ToLower(name)
	normalized = womenSuffixRe.ReplaceAllString(normalized, " ")
	normalized = u19SuffixRe.ReplaceAllString(normalized, " ")
	normalized = aTeamSuffixRe.ReplaceAllString(normalized, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(normalized, " "))
}

func countryCode(teamName, shortName string) string {
	normalizedName := normalizeFlagName(teamName)
	normalizedShort := normalizeFlagName(shortName)

	if normalizedShort != "" {
		if code, found := teamToCountry[normalizedShort]; found {
			return code
		}
	}
	if normalizedName != "" {
		if code, found := teamToCountry[normalizedName]; found {
			return code
		}
		for key, code := range teamToCountry {
			if strings.Contains(normalizedName, key) {
				return code
			}
		}
	}

	return ""
}

// teamFlagURL returns a CDN flag image URL for a team, "" when the team
// maps to no country (franchise and domestic sides).
func teamFlagURL(teamName, shortName string, size int) string {
	code := countryCode(teamName, shortName)
	if code == "" {
		return ""
	}
	return "https://flagcdn.com/w" + strconv.Itoa(size) + "/" + code + ".png"
}
