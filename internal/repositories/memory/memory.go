// Package memory provides in-memory repository implementations backed by
// mutex-guarded maps. They honor the same filter, ordering, and error
// semantics as the mongodb implementations and exist for tests and local
// development without a database.
package memory

import (
	"sort"
	"time"

	"kumbhsetu/internal/utils"
)

// paginate slices a pre-sorted list according to params. A nil params
// returns the whole list.
func paginate[T any](items []T, params *utils.PaginationParams) []T {
	if params == nil {
		return items
	}
	skip := params.GetSkip()
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit := params.GetLimit(); limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// sortNewestFirst orders items by the given timestamp accessor, newest
// first. Ties keep their relative order.
func sortNewestFirst[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return at(items[i]).After(at(items[j]))
	})
}
