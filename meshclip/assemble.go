package meshclip

import (
	"github.com/pkg/errors"
)

// A Loop is a closed polygon of vertex indices. The last vertex connects
// back to the first.
type Loop []int

// assembleLoops stitches unordered segments into closed loops.
//
// Duplicate segments (in either direction) and segments with identical
// endpoints are ignored. Chains which cannot be closed are discarded, and
// the number of discarded segments is returned.
//
// A chain that comes back to one of its own vertices is split there, so
// two loops touching at a single vertex come out as two loops.
func assembleLoops(segs []Segment) (loops []Loop, discarded int, err error) {
	return assembleLoopsBounded(segs, 0)
}

// assembleLoopsBounded is like assembleLoops, but fails with
// ErrUncloseableLoop after maxIters iterations.
//
// Every iteration either consumes a segment or pops one off of the current
// chain, so a bound of 2*len(segs)+1 (used when maxIters is 0) is never
// reached.
func assembleLoopsBounded(segs []Segment, maxIters int) (loops []Loop, discarded int,
	err error) {
	segs = uniqueSegments(segs)
	if maxIters <= 0 {
		maxIters = 2*len(segs) + 1
	}

	byVertex := map[int][]int{}
	for i, s := range segs {
		byVertex[s[0]] = append(byVertex[s[0]], i)
		byVertex[s[1]] = append(byVertex[s[1]], i)
	}
	used := make([]bool, len(segs))

	// next finds an unused segment touching v and returns its other end.
	next := func(v int) (int, bool) {
		for _, si := range byVertex[v] {
			if !used[si] {
				used[si] = true
				s := segs[si]
				if s[0] == v {
					return s[1], true
				}
				return s[0], true
			}
		}
		return 0, false
	}

	var chain []int
	position := map[int]int{}
	push := func(v int) {
		position[v] = len(chain)
		chain = append(chain, v)
	}
	truncate := func(n int) {
		for _, v := range chain[n:] {
			delete(position, v)
		}
		chain = chain[:n]
	}

	var start int
	for iter := 0; ; iter++ {
		if iter >= maxIters {
			return nil, 0, errors.Wrapf(ErrUncloseableLoop,
				"no progress after %d iterations over %d segments", iter, len(segs))
		}
		if len(chain) == 0 {
			for start < len(segs) && used[start] {
				start++
			}
			if start == len(segs) {
				break
			}
			used[start] = true
			push(segs[start][0])
			push(segs[start][1])
			continue
		}
		end := chain[len(chain)-1]
		if v, ok := next(end); ok {
			if k, ok := position[v]; ok {
				if len(chain)-k > 2 {
					loops = append(loops, Loop(append([]int{}, chain[k:]...)))
				} else {
					discarded += len(chain) - k
				}
				truncate(k + 1)
				if len(chain) == 1 {
					truncate(0)
				}
			} else {
				push(v)
			}
			continue
		}

		// Dead end: pop the last segment back off.
		discarded++
		truncate(len(chain) - 1)
		if len(chain) == 1 {
			truncate(0)
		}
	}
	return loops, discarded, nil
}

// uniqueSegments removes degenerate and duplicated segments, preserving the
// order of first appearance.
func uniqueSegments(segs []Segment) []Segment {
	seen := make(map[Segment]bool, len(segs))
	res := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s[0] == s[1] {
			continue
		}
		key := s
		if key[1] < key[0] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		res = append(res, s)
	}
	return res
}
