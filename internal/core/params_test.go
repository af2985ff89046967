package core

import "testing"

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{{Key: "x", Value: "1"}}},
		{Name: "B", Params: []Parameter{{Key: "y", Value: "2"}, {Key: "z", Value: "3"}}},
	}}
	if got := len(snap.Flatten()); got != 3 {
		t.Fatalf("Flatten returned %d params", got)
	}
	p, ok := snap.Lookup("z")
	if !ok || p.Value != "3" {
		t.Fatalf("Lookup(z)=%v,%v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("Lookup found a missing key")
	}
}
