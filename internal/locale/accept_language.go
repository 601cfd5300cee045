package locale

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// defaultWeight applies to entries without a q parameter or with one that is not a number in [0, 1].
const defaultWeight = 1.0

// Preference is one entry of an Accept-Language header reduced to its primary subtag.
type Preference struct {
	Code   string
	Weight float64
}

// ParseAcceptLanguage splits header into preferences ordered by weight,
// highest first. Entries with equal weight keep their header order.
// An empty header yields no preferences.
func ParseAcceptLanguage(header string) []Preference {
	var prefs []Preference
	for _, entry := range strings.Split(header, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tag, params, _ := strings.Cut(entry, ";")
		code := primarySubtag(strings.TrimSpace(tag))
		if code == "" {
			continue
		}
		prefs = append(prefs, Preference{Code: code, Weight: weight(params)})
	}
	sort.SliceStable(prefs, func(i, j int) bool {
		return prefs[i].Weight > prefs[j].Weight
	})
	return prefs
}

// primarySubtag returns the language part of a tag, e.g. "zh" for "zh-CN".
func primarySubtag(code string) string {
	if tag, err := language.Raw.Parse(code); err == nil {
		if base, conf := tag.Base(); conf == language.Exact {
			return base.String()
		}
	}
	primary, _, _ := strings.Cut(code, "-")
	return strings.ToLower(primary)
}

// weight extracts the q parameter from the parameters following a tag.
func weight(params string) float64 {
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(param, "=")
		if !ok || strings.TrimSpace(key) != "q" {
			continue
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(w) || w < 0 || w > 1 {
			return defaultWeight
		}
		return w
	}
	return defaultWeight
}
