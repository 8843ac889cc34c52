package service

import (
	"sort"

	"github.com/Aashish23092/drive-decision/dto"
)

const (
	duplicateCenterRadius = 90
	duplicateMetersSlack  = 30
)

// LegSelection is the outcome of choosing legs from deduplicated candidates.
type LegSelection struct {
	Estimate     dto.TripEstimate
	Candidates   []dto.TDCandidate
	Intermediate []dto.TDCandidate
}

type tdKey struct {
	seconds int
	meters  int
}

// DedupeCandidates collapses repeated detections of the same reading.
// Exact repeats keep the tightest box; near repeats (close centers and
// almost equal distance) keep the first one seen.
func DedupeCandidates(candidates []dto.TDCandidate) []dto.TDCandidate {
	index := make(map[tdKey]int)
	var exact []dto.TDCandidate
	for _, c := range candidates {
		k := tdKey{c.TD.Seconds, c.TD.Meters}
		if i, ok := index[k]; ok {
			if c.Area() < exact[i].Area() {
				exact[i] = c
			}
			continue
		}
		index[k] = len(exact)
		exact = append(exact, c)
	}

	kept := make([]dto.TDCandidate, 0, len(exact))
	for _, c := range exact {
		if !nearDuplicate(c, kept) {
			kept = append(kept, c)
		}
	}
	return kept
}

func nearDuplicate(c dto.TDCandidate, kept []dto.TDCandidate) bool {
	cc := c.Center()
	for _, k := range kept {
		kc := k.Center()
		if abs(cc.X-kc.X) <= duplicateCenterRadius &&
			abs(cc.Y-kc.Y) <= duplicateCenterRadius &&
			abs(c.TD.Meters-k.TD.Meters) <= duplicateMetersSlack {
			return true
		}
	}
	return false
}

// SelectLegs picks the shortest candidate as the pickup leg and the longest
// as the trip leg. A single candidate becomes the trip with no pickup.
func SelectLegs(candidates []dto.TDCandidate) (*LegSelection, error) {
	if len(candidates) == 0 {
		return nil, dto.ErrNoCandidates
	}

	sorted := make([]dto.TDCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TD.Meters < sorted[j].TD.Meters
	})

	sel := &LegSelection{Candidates: sorted}
	if len(sorted) == 1 {
		sel.Estimate = dto.TripEstimate{Trip: sorted[0].TD}
		return sel, nil
	}

	last := len(sorted) - 1
	sel.Estimate = dto.TripEstimate{Pickup: sorted[0].TD, Trip: sorted[last].TD}
	sel.Intermediate = sorted[1:last]
	return sel, nil
}
