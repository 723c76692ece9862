package tracking

import (
	"sort"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// CanonicalSort orders projects in place:
// 1. Start date: latest first (unset sorts as the Unix epoch, so last)
// 2. ID: lexical ascending
//
// The order is recomputed on every call; no index is kept, which is fine for
// a few thousand records but linear in collection size.
func CanonicalSort(projects []domain.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := &projects[i], &projects[j]

		// 1. Start date (descending)
		ka, kb := startKey(a), startKey(b)
		if ka != kb {
			return ka > kb
		}

		// 2. ID (lexical)
		return a.ID < b.ID
	})
}

func startKey(p *domain.Project) int64 {
	if p.StartDate == nil {
		return 0
	}
	return p.StartDate.UnixMilli()
}
