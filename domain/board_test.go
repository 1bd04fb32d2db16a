package domain

import "testing"

func TestParseBoardLabel(t *testing.T) {
	cases := []struct {
		name  string
		label string
		want  string
	}{
		{"with owner suffix", "Alpha Owner: bob", "Alpha"},
		{"no owner marker", "  Backlog  ", "Backlog"},
		{"owner marker only", "Owner: sue", ""},
		{"name containing spaces", "Sprint Plan Owner: sue", "Sprint Plan"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseBoardLabel(tc.label); got != tc.want {
				t.Fatalf("ParseBoardLabel(%q) = %q, want %q", tc.label, got, tc.want)
			}
		})
	}
}

func TestParseViewMode(t *testing.T) {
	if got := ParseViewMode("grid"); got != ViewGrid {
		t.Fatalf("expected grid, got %s", got)
	}
	if got := ParseViewMode(""); got != ViewList {
		t.Fatalf("expected list default, got %s", got)
	}
	if got := ParseViewMode("mosaic"); got != ViewList {
		t.Fatalf("expected list fallback for unknown mode, got %s", got)
	}
	if got := ViewGrid.ContainerClass(); got != "grid-view" {
		t.Fatalf("unexpected container class %q", got)
	}
}

func TestBoardItemLabelAndAccess(t *testing.T) {
	owned := BoardItem{Name: "Roadmap", OwnerName: "bob", IsOwner: true}
	if got := owned.Label(); got != "Roadmap Owner: bob" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := owned.AccessLevel(); got != "owner" {
		t.Fatalf("expected owner badge, got %q", got)
	}
	member := BoardItem{Name: "Roadmap"}
	if got := member.AccessLevel(); got != "member" {
		t.Fatalf("expected member badge, got %q", got)
	}
	if got := member.Label(); got != "Roadmap" {
		t.Fatalf("unexpected label without owner %q", got)
	}
}
