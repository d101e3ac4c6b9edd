package search

import "heropick/internal/domain"

// PickTop returns the first result. The proxy's ordering is authoritative, so
// no re-ranking happens here.
func PickTop(results []domain.CharacterSummary) (domain.CharacterSummary, bool) {
	if len(results) == 0 {
		return domain.CharacterSummary{}, false
	}
	return results[0], true
}

// FindByID looks id up in the results currently held by the client
func FindByID(results []domain.CharacterSummary, id int) (domain.CharacterSummary, bool) {
	for _, r := range results {
		if r.ID == id {
			return r, true
		}
	}
	return domain.CharacterSummary{}, false
}
