package migrate

import "sort"

// SortMigrations produces the single execution sequence for a candidate
// set: migrations are ordered by Timestamp (lexicographic string
// comparison), ties broken by the Name portion of the identifier, and
// fully-equal keys keep their discovery order. Missing timestamps and
// unparsable identifiers compare as empty strings, so sorting never
// fails; it only places such migrations deterministically first.
//
// The input slice is not modified.
func SortMigrations(migrations []Migration) []Migration {
	ordered := make([]Migration, len(migrations))
	copy(ordered, migrations)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Timestamp != ordered[j].Timestamp {
			return ordered[i].Timestamp < ordered[j].Timestamp
		}
		return ordered[i].Ident.Name < ordered[j].Ident.Name
	})

	return ordered
}
