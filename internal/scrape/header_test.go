// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"reflect"
	"testing"

	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

func TestComposeHeadersSharedChild(t *testing.T) {
	spec := types.HeaderSpec{
		Parents:  []string{"x", "y"},
		Children: []string{"a", "b"},
	}
	got, err := ComposeHeaders(spec)
	if err != nil {
		t.Fatalf("ComposeHeaders() error = %v", err)
	}
	want := []string{"a_x", "b_x", "a_y", "b_y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ComposeHeaders() = %v, want %v", got, want)
	}
}

func TestComposeHeadersParallelChild(t *testing.T) {
	spec := types.HeaderSpec{
		Parents:   []string{"x", "y"},
		ChildSets: [][]string{{"a", "b"}, {"c"}},
	}
	got, err := ComposeHeaders(spec)
	if err != nil {
		t.Fatalf("ComposeHeaders() error = %v", err)
	}
	want := []string{"a_x", "b_x", "c_y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ComposeHeaders() = %v, want %v", got, want)
	}
}

func TestComposeHeadersCustomSep(t *testing.T) {
	spec := types.HeaderSpec{
		Parents:  []string{"urban"},
		Children: []string{"anc1"},
		Sep:      "::",
	}
	got, err := ComposeHeaders(spec)
	if err != nil {
		t.Fatalf("ComposeHeaders() error = %v", err)
	}
	if got[0] != "anc1::urban" {
		t.Errorf("got %q, want anc1::urban", got[0])
	}
}

func TestComposeHeadersCountsMatchSpec(t *testing.T) {
	shared := types.HeaderSpec{Parents: []string{"x", "y", "z"}, Children: []string{"a", "b"}}
	names, err := ComposeHeaders(shared)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != shared.ComposedCount() {
		t.Errorf("len = %d, ComposedCount = %d", len(names), shared.ComposedCount())
	}

	parallel := types.HeaderSpec{Parents: []string{"x", "y"}, ChildSets: [][]string{{"a"}, {"b", "c", "d"}}}
	names, err = ComposeHeaders(parallel)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != parallel.ComposedCount() {
		t.Errorf("len = %d, ComposedCount = %d", len(names), parallel.ComposedCount())
	}
}

func TestComposeHeadersInvalidSpec(t *testing.T) {
	_, err := ComposeHeaders(types.HeaderSpec{Parents: []string{"x"}})
	if err == nil {
		t.Fatal("ComposeHeaders() = nil error for invalid spec")
	}
}
