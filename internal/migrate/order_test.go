package migrate

import "testing"

func idents(migrations []Migration) []string {
	out := make([]string, len(migrations))
	for i, m := range migrations {
		out[i] = m.Ident.Raw
	}
	return out
}

func TestSortMigrations_TimestampDominatesName(t *testing.T) {
	input := []Migration{
		{Ident: ParseIdent("a:aaa"), Timestamp: "2024-01-03"},
		{Ident: ParseIdent("a:zzz"), Timestamp: "2024-01-01"},
		{Ident: ParseIdent("a:mmm"), Timestamp: "2024-01-02"},
	}

	ordered := SortMigrations(input)

	expected := []string{"a:zzz", "a:mmm", "a:aaa"}
	for i, raw := range idents(ordered) {
		if raw != expected[i] {
			t.Errorf("Expected %s at position %d, got: %s", expected[i], i, raw)
		}
	}
}

func TestSortMigrations_NameBreaksTimestampTies(t *testing.T) {
	input := []Migration{
		{Ident: ParseIdent("a:two"), Timestamp: "2024-01-01"},
		{Ident: ParseIdent("a:three"), Timestamp: "2024-01-01"},
		{Ident: ParseIdent("a:one"), Timestamp: "2024-01-01"},
	}

	ordered := SortMigrations(input)

	expected := []string{"a:one", "a:three", "a:two"}
	for i, raw := range idents(ordered) {
		if raw != expected[i] {
			t.Errorf("Expected %s at position %d, got: %s", expected[i], i, raw)
		}
	}
}

func TestSortMigrations_MissingTimestampSortsFirst(t *testing.T) {
	input := []Migration{
		{Ident: ParseIdent("a:later"), Timestamp: "2024-01-01"},
		{Ident: ParseIdent("a:unstamped")},
	}

	ordered := SortMigrations(input)

	if ordered[0].Ident.Raw != "a:unstamped" {
		t.Errorf("Expected a:unstamped first, got: %s", ordered[0].Ident.Raw)
	}
}

func TestSortMigrations_FullTiesPreserveDiscoveryOrder(t *testing.T) {
	// Unparsable identifiers compare with empty names, so these three are
	// fully equal keys and must keep their input order.
	input := []Migration{
		{Ident: ParseIdent("first")},
		{Ident: ParseIdent("second")},
		{Ident: ParseIdent("third")},
	}

	ordered := SortMigrations(input)

	expected := []string{"first", "second", "third"}
	for i, raw := range idents(ordered) {
		if raw != expected[i] {
			t.Errorf("Expected %s at position %d, got: %s", expected[i], i, raw)
		}
	}
}

func TestSortMigrations_Idempotent(t *testing.T) {
	input := []Migration{
		{Ident: ParseIdent("a:one"), Timestamp: "2024-01-02"},
		{Ident: ParseIdent("a:two"), Timestamp: "2024-01-01"},
		{Ident: ParseIdent("a:three"), Timestamp: "2024-01-01"},
	}

	once := SortMigrations(input)
	twice := SortMigrations(once)

	if len(once) != len(twice) {
		t.Fatalf("Expected equal lengths, got: %d and %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Ident.Raw != twice[i].Ident.Raw {
			t.Errorf("Expected %s at position %d after re-sort, got: %s",
				once[i].Ident.Raw, i, twice[i].Ident.Raw)
		}
	}
}

func TestSortMigrations_DoesNotModifyInput(t *testing.T) {
	input := []Migration{
		{Ident: ParseIdent("a:b"), Timestamp: "2"},
		{Ident: ParseIdent("a:a"), Timestamp: "1"},
	}

	SortMigrations(input)

	if input[0].Ident.Raw != "a:b" {
		t.Errorf("Expected input order untouched, got: %s first", input[0].Ident.Raw)
	}
}

func TestParseIdent(t *testing.T) {
	tests := []struct {
		raw       string
		namespace string
		name      string
	}{
		{"accounts:create_users", "accounts", "create_users"},
		{"a:b:c", "a", "b:c"},
		{":name", "", "name"},
		{"noseparator", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		ident := ParseIdent(tt.raw)
		if ident.Namespace != tt.namespace {
			t.Errorf("ParseIdent(%q): expected namespace %q, got: %q", tt.raw, tt.namespace, ident.Namespace)
		}
		if ident.Name != tt.name {
			t.Errorf("ParseIdent(%q): expected name %q, got: %q", tt.raw, tt.name, ident.Name)
		}
		if ident.Raw != tt.raw {
			t.Errorf("ParseIdent(%q): expected raw preserved, got: %q", tt.raw, ident.Raw)
		}
	}
}
