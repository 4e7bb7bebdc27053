// Package parser extracts structured fitment candidates from free-text
// automotive application descriptions such as
//
//	"2005-2010 WK Grand Cherokee (Left or Right Front Upper Ball Joint)"
//
// Parsing is deterministic and total: Parse always returns a
// domain.ParsedApplication, never an error. Text the parser cannot interpret
// simply yields empty fields; downstream validation grades such records as
// WARNING. Anything the parser gets wrong (vehicle codes, renamed models)
// is corrected by the administrator-maintained model-mapping table, not
// here.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
)

// yearRangeRE matches "YYYY-YYYY" or a single "YYYY" anchored at the start
// of the text. En dashes appear in some vendor feeds and are accepted.
var yearRangeRE = regexp.MustCompile(`^\s*(\d{4})(?:\s*[-–]\s*(\d{4}))?\b`)

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)

// titleCaser canonicalizes make names for display ("jeep" → "Jeep").
var titleCaser = cases.Title(language.AmericanEnglish)

// knownMakes is the make vocabulary the parser recognizes as a leading
// token. Fragments that do not start with one of these are treated as a
// vehicle-code/model run and left for the mapping table to interpret.
var knownMakes = map[string]struct{}{
	"acura": {}, "audi": {}, "bmw": {}, "chevrolet": {}, "chrysler": {},
	"dodge": {}, "ford": {}, "gmc": {}, "honda": {}, "hyundai": {},
	"jeep": {}, "kia": {}, "lexus": {}, "mazda": {}, "mercedes": {},
	"nissan": {}, "ram": {}, "subaru": {}, "tesla": {}, "toyota": {},
	"volkswagen": {},
}

// positionVocabulary is the fixed keyword set recognized inside the
// parenthesized suffix, including the disjunction keyword "or".
var positionVocabulary = map[string]struct{}{
	domain.PosFront: {}, domain.PosRear: {},
	domain.PosLeft: {}, domain.PosRight: {},
	domain.PosUpper: {}, domain.PosLower: {},
	domain.PosInner: {}, domain.PosOuter: {},
	"or": {},
}

// Parse extracts a year range, make/model fragment, and position qualifier
// tokens from raw application text.
//
// Steps:
//  1. A leading "YYYY-YYYY" or "YYYY" becomes the year range. Inverted
//     ranges are swapped. No year → both pointers nil (the engine falls
//     back to every catalogued year, explicitly).
//  2. The remaining token run up to the first parenthesis is the vehicle
//     fragment. When its first token is a known make, that token becomes
//     Make (title-cased) and the rest the Model; otherwise the whole
//     fragment is the Model and Make stays empty.
//  3. Parenthesized text is keyword-scanned for position qualifiers.
//     Absent suffix → no tokens, meaning all four axes resolve to na.
func Parse(raw string) domain.ParsedApplication {
	var out domain.ParsedApplication

	rest := raw
	if m := yearRangeRE.FindStringSubmatch(rest); m != nil {
		start, _ := strconv.Atoi(m[1])
		end := start
		if m[2] != "" {
			end, _ = strconv.Atoi(m[2])
		}
		if end < start {
			start, end = end, start
		}
		out.YearStart = &start
		out.YearEnd = &end
		rest = rest[len(m[0]):]
	}

	fragment := rest
	var suffix string
	if i := strings.IndexByte(rest, '('); i >= 0 {
		fragment = rest[:i]
		suffix = rest[i+1:]
		if j := strings.LastIndexByte(suffix, ')'); j >= 0 {
			suffix = suffix[:j]
		}
	}

	fragment = whitespaceRE.ReplaceAllString(strings.TrimSpace(fragment), " ")
	if fragment != "" {
		tokens := strings.Split(fragment, " ")
		if _, ok := knownMakes[strings.ToLower(tokens[0])]; ok && len(tokens) > 1 {
			out.Make = titleCaser.String(strings.ToLower(tokens[0]))
			out.Model = strings.Join(tokens[1:], " ")
		} else {
			out.Model = fragment
		}
	}

	out.PositionTokens = scanPositionTokens(suffix)
	return out
}

// scanPositionTokens returns the vocabulary keywords present in the
// parenthesized suffix, lowercased, in order of first occurrence.
func scanPositionTokens(suffix string) []string {
	if strings.TrimSpace(suffix) == "" {
		return nil
	}
	var tokens []string
	seen := make(map[string]struct{})
	for _, w := range strings.Fields(suffix) {
		w = strings.ToLower(strings.Trim(w, ".,;:"))
		if _, ok := positionVocabulary[w]; !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		tokens = append(tokens, w)
	}
	return tokens
}
