package service

import (
	"image"

	"github.com/Aashish23092/drive-decision/dto"
	"github.com/Aashish23092/drive-decision/utils"
)

// Pairing and plausibility limits, in source-bitmap pixels.
const (
	pairMinDx        = 120
	pairMinDy        = 140
	pairWidthFactor  = 0.75
	pairHeightFactor = 2.2
	sameRowMaxGap    = 140
	candidatePadding = 12
	maxLegMeters     = 600_000
)

// Provenance labels recorded on candidates.
const (
	ProvenanceLine = "line"
	ProvenancePair = "pair"
)

// BuildTokens normalizes every OCR line and keeps those carrying a time or a distance.
func BuildTokens(lines []dto.OCRLine) []dto.Token {
	tokens := make([]dto.Token, 0, len(lines))
	for _, line := range lines {
		text := utils.NormalizeLine(line.Text)
		if text == "" {
			continue
		}
		secs, hasTime := utils.ParseSeconds(text)
		meters, hasDist := utils.ParseMeters(text)
		if !hasTime && !hasDist {
			continue
		}
		tokens = append(tokens, dto.Token{
			Rect:    line.Bounds().Canon(),
			Text:    text,
			Seconds: secs,
			Meters:  meters,
			HasTime: hasTime,
			HasDist: hasDist,
		})
	}
	return tokens
}

// BuildCandidates turns tokens into time-distance candidates. Lines carrying
// both quantities become candidates directly; time-only lines are paired with
// the nearest unconsumed distance-only line.
func BuildCandidates(tokens []dto.Token) []dto.TDCandidate {
	var (
		candidates []dto.TDCandidate
		timeOnly   []dto.Token
		distOnly   []dto.Token
	)

	for _, tok := range tokens {
		switch {
		case tok.HasTime && tok.HasDist:
			candidates = appendCandidate(candidates, tok.Rect, tok.Seconds, tok.Meters, ProvenanceLine)
		case tok.HasTime:
			timeOnly = append(timeOnly, tok)
		case tok.HasDist:
			distOnly = append(distOnly, tok)
		}
	}

	consumed := make([]bool, len(distOnly))
	for _, tt := range timeOnly {
		best, bestCost := -1, 0
		for i, dt := range distOnly {
			if consumed[i] || !nearEnough(tt.Rect, dt.Rect) {
				continue
			}
			cost := pairCost(tt.Rect, dt.Rect)
			if best < 0 || cost < bestCost {
				best, bestCost = i, cost
			}
		}
		if best < 0 {
			continue
		}
		consumed[best] = true
		rect := tt.Rect.Union(distOnly[best].Rect)
		candidates = appendCandidate(candidates, rect, tt.Seconds, distOnly[best].Meters, ProvenancePair)
	}

	return candidates
}

func appendCandidate(out []dto.TDCandidate, rect image.Rectangle, secs, meters int, provenance string) []dto.TDCandidate {
	if secs <= 0 || meters <= 0 || meters > maxLegMeters {
		return out
	}
	rect = padRect(rect, candidatePadding)
	return append(out, dto.TDCandidate{
		Rect:       rect,
		Box:        dto.BoxFromRect(rect),
		TD:         dto.TimeDistance{Seconds: secs, Meters: meters},
		Provenance: provenance,
	})
}

// nearEnough accepts stacked readings within a box-relative window, or
// side-by-side readings on the same row separated by a small gap.
func nearEnough(a, b image.Rectangle) bool {
	dx, dy := centerDelta(a, b)
	maxDx := max(pairWidthFactor*float64(max(a.Dx(), b.Dx())), pairMinDx)
	maxDy := max(pairHeightFactor*float64(max(a.Dy(), b.Dy())), pairMinDy)
	if float64(dx) <= maxDx && float64(dy) <= maxDy {
		return true
	}
	return sameRow(a, b) && horizontalGap(a, b) <= sameRowMaxGap
}

// pairCost weighs vertical distance double: time and distance are usually stacked.
func pairCost(a, b image.Rectangle) int {
	dx, dy := centerDelta(a, b)
	return dx + 2*dy
}

func centerDelta(a, b image.Rectangle) (int, int) {
	ca := image.Pt((a.Min.X+a.Max.X)/2, (a.Min.Y+a.Max.Y)/2)
	cb := image.Pt((b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2)
	return abs(ca.X - cb.X), abs(ca.Y - cb.Y)
}

func sameRow(a, b image.Rectangle) bool {
	return a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}

func horizontalGap(a, b image.Rectangle) int {
	switch {
	case a.Max.X < b.Min.X:
		return b.Min.X - a.Max.X
	case b.Max.X < a.Min.X:
		return a.Min.X - b.Max.X
	}
	return 0
}

func padRect(r image.Rectangle, pad int) image.Rectangle {
	return image.Rect(max(r.Min.X-pad, 0), max(r.Min.Y-pad, 0), r.Max.X+pad, r.Max.Y+pad)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
