package world

import (
	"strings"

	"golang.org/x/text/cases"
)

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// matchItem resolves a player-typed name against item IDs in list order.
// With preferExact, an exact (folded) name match anywhere in the list beats
// an earlier substring match.
func (w *World) matchItem(ids []string, name string, preferExact bool) *Item {
	query := fold(name)
	if query == "" {
		return nil
	}
	if preferExact {
		for _, id := range ids {
			if it, ok := w.Items[id]; ok && fold(it.Name) == query {
				return it
			}
		}
	}
	for _, id := range ids {
		if it, ok := w.Items[id]; ok && strings.Contains(fold(it.Name), query) {
			return it
		}
	}
	return nil
}
