// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import "github.com/murphy-xq/survey-report-scrapr/pkg/types"

// ComposeHeaders synthesizes the flat column name list from a two-level
// header spec. In shared-child mode every child label is joined with every
// parent, child-major within parent order: child=[a b], parent=[x y] gives
// [a_x b_x a_y b_y]. In parallel-list mode each parent is paired with its
// own child list positionally: child=[[a b] [c]], parent=[x y] gives
// [a_x b_x c_y].
func ComposeHeaders(spec types.HeaderSpec) ([]string, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	sep := spec.Separator()
	names := make([]string, 0, spec.ComposedCount())

	switch spec.Mode() {
	case types.ModeParallelChild:
		for i, parent := range spec.Parents {
			for _, child := range spec.ChildSets[i] {
				names = append(names, child+sep+parent)
			}
		}
	default:
		for _, parent := range spec.Parents {
			for _, child := range spec.Children {
				names = append(names, child+sep+parent)
			}
		}
	}

	return names, nil
}
