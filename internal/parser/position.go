// Position enumeration. Disjunctive text ("Left or Right") is expanded here
// into discrete VehiclePosition tuples, so the validation state machine
// downstream classifies exactly one candidate at a time and never has to
// reason about "or" itself.
package parser

import "github.com/sssolid/Crown-Nexus-sub007/internal/domain"

// axis pairs in fixed enumeration order: front/rear varies slowest,
// inner/outer fastest.
var axes = [4][2]string{
	{domain.PosFront, domain.PosRear},
	{domain.PosLeft, domain.PosRight},
	{domain.PosUpper, domain.PosLower},
	{domain.PosInner, domain.PosOuter},
}

// ExpandPositions converts scanned position tokens into the discrete
// position tuples they describe.
//
// Per axis, the candidate values are the axis values named in the tokens, in
// order of first mention; an axis with no named value contributes the single
// value na. An axis with both values named (which is how disjunctive text
// like "Left or Right" scans) contributes both, and the result is the
// Cartesian product across axes. Empty token lists yield exactly one
// all-na tuple.
func ExpandPositions(tokens []string) []domain.VehiclePosition {
	mentioned := make(map[string]int, len(tokens))
	for i, t := range tokens {
		if _, ok := mentioned[t]; !ok {
			mentioned[t] = i
		}
	}

	// Candidate values per axis, ordered by first mention.
	candidates := make([][]string, len(axes))
	for i, pair := range axes {
		a, aOK := mentioned[pair[0]]
		b, bOK := mentioned[pair[1]]
		switch {
		case aOK && bOK:
			if b < a {
				candidates[i] = []string{pair[1], pair[0]}
			} else {
				candidates[i] = []string{pair[0], pair[1]}
			}
		case aOK:
			candidates[i] = []string{pair[0]}
		case bOK:
			candidates[i] = []string{pair[1]}
		default:
			candidates[i] = []string{domain.PosNA}
		}
	}

	var out []domain.VehiclePosition
	for _, fr := range candidates[0] {
		for _, lr := range candidates[1] {
			for _, ul := range candidates[2] {
				for _, io := range candidates[3] {
					out = append(out, domain.VehiclePosition{
						FrontRear:  fr,
						LeftRight:  lr,
						UpperLower: ul,
						InnerOuter: io,
					})
				}
			}
		}
	}
	return out
}
