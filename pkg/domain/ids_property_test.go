package domain

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const hexGroups = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// TestSubjectIDFormatProperties exercises the predicate over generated inputs.
func TestSubjectIDFormatProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every 8-4-4-4-12 hex string is accepted", prop.ForAll(
		func(s string) bool {
			return IsSubjectIDFormat(s)
		},
		gen.RegexMatch(hexGroups),
	))

	properties.Property("acceptance ignores case", prop.ForAll(
		func(s string) bool {
			return IsSubjectIDFormat(strings.ToUpper(s)) && IsSubjectIDFormat(strings.ToLower(s))
		},
		gen.RegexMatch(hexGroups),
	))

	properties.Property("any trailing character is rejected", prop.ForAll(
		func(s string, suffix string) bool {
			return !IsSubjectIDFormat(s + suffix)
		},
		gen.RegexMatch(hexGroups),
		gen.AlphaString().SuchThat(func(v string) bool { return v != "" }),
	))

	properties.Property("dropping a hyphen is rejected", prop.ForAll(
		func(s string, idx int) bool {
			positions := []int{8, 13, 18, 23}
			p := positions[idx%len(positions)]
			return !IsSubjectIDFormat(s[:p] + s[p+1:])
		},
		gen.RegexMatch(hexGroups),
		gen.IntRange(0, 3),
	))

	properties.Property("a non-hex letter anywhere in a group is rejected", prop.ForAll(
		func(s string, pos int) bool {
			if s[pos] == '-' {
				return true
			}
			return !IsSubjectIDFormat(s[:pos] + "z" + s[pos+1:])
		},
		gen.RegexMatch(hexGroups),
		gen.IntRange(0, 35),
	))

	properties.TestingRun(t)
}
