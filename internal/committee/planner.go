// Package committee decomposes an n-party interpolation into the set of
// 3- or 4-party sub-committees that jointly compute each party's Lagrange
// basis contribution.
package committee

import "fmt"

// Committee is an ordered tuple of 3 or 4 distinct party indices (1-based).
// Members[0] is always the owner: the party whose basis contribution this
// committee computes.
type Committee struct {
	Owner   int
	Members []int
}

// Size returns 3 or 4.
func (c Committee) Size() int {
	return len(c.Members)
}

func (c Committee) String() string {
	return fmt.Sprintf("owner=%d members=%v", c.Owner, c.Members)
}

// Plan builds the committee set for n parties numbered 1..n. For each owner
// i, the remaining parties {1..n}\{i} are paired off in ascending order into
// 3-tuples (i, a, b); if that leaves one unpaired party (n even), it is
// folded into the last 3-tuple emitted for that owner, producing a single
// 4-tuple. Every owner's committees partition the other n-1 parties exactly
// once.
func Plan(n int) []Committee {
	var all []Committee
	for owner := 1; owner <= n; owner++ {
		remaining := make([]int, 0, n-1)
		for v := 1; v <= n; v++ {
			if v != owner {
				remaining = append(remaining, v)
			}
		}

		pairable := len(remaining)
		odd := pairable%2 == 1
		if odd {
			pairable--
		}

		var owned []Committee
		for j := 0; j < pairable; j += 2 {
			owned = append(owned, Committee{
				Owner:   owner,
				Members: []int{owner, remaining[j], remaining[j+1]},
			})
		}
		if odd {
			last := &owned[len(owned)-1]
			last.Members = append(last.Members, remaining[len(remaining)-1])
		}
		all = append(all, owned...)
	}
	return all
}
