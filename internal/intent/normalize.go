// internal/intent/normalize.go

// Package intent implements the deterministic intent pipeline: function-name
// normalization, parameter canonicalization and the clarity-gated
// post-processing of raw model output into canonical intent records.
package intent

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripAccents   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	underscoreRuns = regexp.MustCompile(`_{2,}`)
)

// NormalizeFunctionName maps a raw model-produced function name onto the
// canonical vocabulary. It is total (never fails, empty in -> empty out) and
// idempotent: a canonical name passes through every stage unchanged.
func NormalizeFunctionName(raw string) string {
	name := lexicalCleanup(raw)
	if name == "" {
		return ""
	}
	name = replaceTokens(name, inflectedRoot)
	name = rewritePrefix(name)
	name = replaceTokens(name, synonymCanonical)
	name = rewriteSuffix(name)
	name = collapseDuplicateTokens(name)
	name = replacePhrases(name)
	name = stripStopPhrases(name)
	return name
}

// CanonicalAlias resolves an exact alias to its canonical intent name.
// Unknown names pass through verbatim.
func CanonicalAlias(name string) string {
	if canonical, ok := aliasCanonical[name]; ok {
		return canonical
	}
	return name
}

var (
	inflectedRoot    = invertGroups(rootForms)
	synonymCanonical = invertGroups(synonymGroups)
	aliasCanonical   = invertGroups(aliasGroups)
)

func invertGroups(groups map[string][]string) map[string]string {
	out := make(map[string]string)
	for canonical, variants := range groups {
		for _, v := range variants {
			out[v] = canonical
		}
	}
	return out
}

func lexicalCleanup(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, " ", "_")
	name, _, _ = transform.String(stripAccents, name)
	return underscoreRuns.ReplaceAllString(name, "_")
}

// replaceTokens swaps whole underscore-delimited tokens, preserving the
// boundary structure around them.
func replaceTokens(name string, table map[string]string) string {
	tokens := strings.Split(name, "_")
	for i, tok := range tokens {
		if canonical, ok := table[tok]; ok {
			tokens[i] = canonical
		}
	}
	return strings.Join(tokens, "_")
}

func rewritePrefix(name string) string {
	for _, rule := range prefixRewrites {
		if strings.HasPrefix(name, rule.old) {
			name = rule.new + name[len(rule.old):]
		}
	}
	return name
}

// rewriteSuffix applies at most one suffix rewrite per call: the first rule
// whose variant matches wins and the stage stops.
func rewriteSuffix(name string) string {
	for _, rule := range suffixRules {
		for _, variant := range rule.variants {
			if len(name) > len(variant) && strings.HasSuffix(name, variant) {
				return name[:len(name)-len(variant)] + "_" + rule.canonical
			}
		}
	}
	return name
}

func collapseDuplicateTokens(name string) string {
	tokens := strings.Split(name, "_")
	out := tokens[:0]
	prev := ""
	for i, tok := range tokens {
		if i == 0 || tok != prev {
			out = append(out, tok)
		}
		prev = tok
	}
	return strings.Join(out, "_")
}

func replacePhrases(name string) string {
	for _, group := range phraseGroups {
		for _, variant := range group.variants {
			name = strings.ReplaceAll(name, variant, group.canonical)
		}
	}
	return name
}

func stripStopPhrases(name string) string {
	for _, phrase := range stopPhrases {
		name = strings.ReplaceAll(name, phrase, "")
	}
	return name
}
