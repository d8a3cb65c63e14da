package bottling

import (
	"strings"

	"essentia/internal/domain/catalogs/lot"
)

// MatchLotByDisplayName finds the lot whose name prefixes the product
// display name, picking the longest match.
//
// Display names are "<lot name> <size>", so when both "Rose" and
// "Rose Garden" exist, "Rose Garden 50ml" must resolve to "Rose Garden".
// The prefix must end at a word boundary: "Rose" does not match
// "Rosewood 50ml".
func MatchLotByDisplayName(displayName string, lots []*lot.BulkLot) *lot.BulkLot {
	name := strings.ToLower(displayName)

	var best *lot.BulkLot
	bestLen := 0
	for _, l := range lots {
		prefix := strings.ToLower(l.Name)
		if prefix == "" || len(prefix) <= bestLen {
			continue
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if len(name) > len(prefix) && name[len(prefix)] != ' ' {
			continue
		}
		best = l
		bestLen = len(prefix)
	}
	return best
}
