package sqlxrepos

import (
	"strings"

	"github.com/shulehub/shule/core"
)

// orderBy renders an ORDER BY clause from the requested ordering, keeping
// only whitelisted columns. Unknown columns are dropped; an empty result
// falls back to the given default clause.
func orderBy(ordering []core.DBOrdering, columns map[string]bool, fallback string) string {
	orderList := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		if columns[ord.Field] {
			orderList = append(orderList, ord.String())
		}
	}
	if len(orderList) == 0 {
		return " ORDER BY " + fallback
	}
	return " ORDER BY " + strings.Join(orderList, ", ")
}
