// Package testdsl generates well-formed Depict DSL source for property-based
// tests, using pgregory.net/rapid as the generator/shrinker.
package testdsl

import (
	"fmt"
	"strings"

	"pgregory.net/rapid"
)

var actorNames = []string{"A", "B", "C", "D", "E", "F"}

// Program is a *rapid.Generator that produces syntactically valid Depict
// DSL source: a handful of statements over a small shared actor pool, each
// with one or more actions and an optional response label.
func Program() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		stmtCount := rapid.IntRange(1, 5).Draw(t, "stmtCount")
		var lines []string
		for i := 0; i < stmtCount; i++ {
			lines = append(lines, statement(t))
		}
		return strings.Join(lines, "\n")
	})
}

func statement(t *rapid.T) string {
	actorCount := rapid.IntRange(2, 4).Draw(t, "actorCount")
	names := rapid.SliceOfNDistinct(rapid.SampledFrom(actorNames), actorCount, actorCount, func(s string) string { return s }).Draw(t, "actors")

	actionCount := rapid.IntRange(1, 3).Draw(t, "actionCount")
	var actions []string
	for i := 0; i < actionCount; i++ {
		label := rapid.StringMatching(`[a-z]{2,8}`).Draw(t, "label")
		if rapid.Bool().Draw(t, "hasResponse") {
			resp := rapid.StringMatching(`[a-z]{2,8}`).Draw(t, "response")
			actions = append(actions, fmt.Sprintf("%s / %s", label, resp))
		} else {
			actions = append(actions, label)
		}
	}

	return fmt.Sprintf("%s: %s", strings.Join(names, " "), strings.Join(actions, ", "))
}
