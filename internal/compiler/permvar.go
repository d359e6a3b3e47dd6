package compiler

// permvar.go implements permanent-variable analysis, spec.md §4.7 and §9:
// a two-pass walk that classifies each variable in a rule as permanent
// (spans more than one chunk, so must survive a Call in a Y register) or
// temporary (lives only within one chunk's X registers).

import "github.com/smoynes/wam/internal/term"

// chunks splits a rule into its permanent-variable-analysis chunks: the
// head together with the first body goal form chunk 0; every subsequent
// body goal is its own chunk. This follows the "safe choice" the design
// notes call out explicitly rather than leaving the head's chunk membership
// ambiguous.
func chunks(r term.Rule) [][]term.Compound {
	if len(r.Body) == 0 {
		return [][]term.Compound{{r.Head}}
	}

	chunks := make([][]term.Compound, 0, len(r.Body))
	chunks = append(chunks, []term.Compound{r.Head, r.Body[0]})

	for _, goal := range r.Body[1:] {
		chunks = append(chunks, []term.Compound{goal})
	}

	return chunks
}

// permanentVars returns the names of r's permanent variables, in order of
// first textual occurrence (head then body, depth-first left-to-right). A
// variable is permanent iff it occurs in more than one chunk.
func permanentVars(r term.Rule) []string {
	chunkSets := make(map[string]map[int]bool)

	for idx, chunk := range chunks(r) {
		for _, goal := range chunk {
			for _, v := range term.Vars(goal) {
				set, ok := chunkSets[v.Name]
				if !ok {
					set = make(map[int]bool)
					chunkSets[v.Name] = set
				}

				set[idx] = true
			}
		}
	}

	var order []string

	seen := make(map[string]bool)

	record := func(goal term.Compound) {
		for _, v := range term.Vars(goal) {
			if seen[v.Name] {
				continue
			}

			seen[v.Name] = true

			if len(chunkSets[v.Name]) > 1 {
				order = append(order, v.Name)
			}
		}
	}

	record(r.Head)

	for _, goal := range r.Body {
		record(goal)
	}

	return order
}
