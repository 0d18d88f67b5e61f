// Package search expands free-text queries and scores local-business results.
package search

import "strings"

// synonyms maps a query term to related terms a user likely also means.
// Expansion is intentionally a static dictionary plus substring matching;
// anything smarter belongs to the external search collaborator.
var synonyms = map[string][]string{
	"food":       {"restaurant", "eat", "dining", "kitchen"},
	"restaurant": {"food", "dining", "eat"},
	"coffee":     {"cafe", "espresso", "barista"},
	"cafe":       {"coffee", "bakery"},
	"bakery":     {"bread", "pastry", "cake"},
	"bar":        {"pub", "drinks", "cocktail"},
	"gym":        {"fitness", "workout", "training"},
	"fitness":    {"gym", "workout"},
	"hair":       {"salon", "barber", "haircut"},
	"salon":      {"hair", "beauty", "spa"},
	"shop":       {"store", "boutique", "market"},
	"store":      {"shop", "market"},
	"car":        {"auto", "mechanic", "garage"},
	"doctor":     {"clinic", "medical", "health"},
	"pet":        {"vet", "veterinary", "grooming"},
}

// Expand splits a query into lowercase terms and adds dictionary synonyms.
// The original terms always come first; the result has no duplicates.
func Expand(query string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if len(fields) == 0 {
		return nil
	}

	terms := make([]string, 0, len(fields)*3)
	seen := make(map[string]struct{})
	add := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	for _, f := range fields {
		add(f)
	}
	for _, f := range fields {
		for key, related := range synonyms {
			if !strings.Contains(f, key) && !strings.Contains(key, f) {
				continue
			}
			for _, r := range related {
				add(r)
			}
		}
	}
	return terms
}
