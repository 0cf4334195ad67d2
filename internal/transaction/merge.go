package transaction

import "fmt"

// Merge reconciles an incoming record set with the existing one. Existing
// records are preserved unchanged; an incoming record whose id collides with
// an existing one (or with an earlier incoming record in the same call) gets
// a deterministic "<id>_import_<n>" suffix, probing n upward until unique.
// The suffix counter is shared across the whole call, so collision renames
// stay unique even when the same source id appears twice in incoming.
//
// Nothing is dropped: len(result) == len(existing) + len(incoming), with all
// incoming records ordered before all existing ones. Callers that need a
// date ordering re-sort afterwards.
func Merge(existing, incoming []Transaction) []Transaction {
	used := make(map[string]struct{}, len(existing)+len(incoming))
	for _, t := range existing {
		used[t.ID] = struct{}{}
	}

	suffix := 0

	merged := make([]Transaction, 0, len(existing)+len(incoming))

	for _, t := range incoming {
		id := t.ID

		for {
			if _, taken := used[id]; !taken {
				break
			}

			suffix++
			id = fmt.Sprintf("%s_import_%d", t.ID, suffix)
		}

		used[id] = struct{}{}
		t.ID = id
		merged = append(merged, t)
	}

	return append(merged, existing...)
}
