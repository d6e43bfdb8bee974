package parser

import (
	"regexp"
	"strings"
)

// Match is one regexp match on a line with its capture groups
type Match struct {
	Start, End int
	// Groups holds the full match at index 0 followed by the captures
	Groups []string
}

// Text returns the full matched text
func (m Match) Text() string {
	return m.Groups[0]
}

// FindAll returns the non-overlapping matches of re in s
func FindAll(re *regexp.Regexp, s string) []Match {
	var matches []Match
	for _, loc := range re.FindAllStringSubmatchIndex(s, -1) {
		matches = append(matches, newMatch(s, loc))
	}
	return matches
}

// FindFunctionCalls returns the adjustment-shaped calls on a line.
// A call must start on a word boundary of the whole line, and names
// beginning with "mix" are skipped because MixRegexp handles those.
func FindFunctionCalls(s string) []Match {
	var matches []Match
	for pos := 0; pos < len(s); {
		loc := FunctionRegexp.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += pos
			}
		}

		start := loc[0]
		if (start > 0 && isWordByte(s[start-1])) || strings.HasPrefix(s[start:], "mix") {
			pos = start + 1
			continue
		}

		matches = append(matches, newMatch(s, loc))
		pos = loc[1]
	}
	return matches
}

// Replace substitutes each match with the text repl returns for it
func Replace(s string, matches []Match, repl func(Match) string) string {
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m.Start])
		b.WriteString(repl(m))
		last = m.End
	}
	b.WriteString(s[last:])
	return b.String()
}

func newMatch(s string, loc []int) Match {
	m := Match{Start: loc[0], End: loc[1]}
	for i := 0; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			m.Groups = append(m.Groups, "")
			continue
		}
		m.Groups = append(m.Groups, s[loc[i]:loc[i+1]])
	}
	return m
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
