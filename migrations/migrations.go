// Package migrations holds the versioned schema change catalog. Each
// descriptor file registers itself at init; apply order follows the sortable
// timestamp prefix of the migration ID, not registration order.
//
// Descriptors declare their own table snapshots instead of reusing the domain
// models, so an old migration keeps producing the same schema after the
// models move on.
package migrations

import (
	"sort"

	"github.com/medeu/storefront/pkg/migrate"
)

var all []*migrate.Migration

func register(m *migrate.Migration) {
	all = append(all, m)
}

// All returns the migration catalog in ascending ID order.
func All() []*migrate.Migration {
	out := make([]*migrate.Migration, len(all))
	copy(out, all)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
