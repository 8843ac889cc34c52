package service

import (
	"image"
	"testing"

	"github.com/Aashish23092/drive-decision/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(text string, x0, y0, x1, y1 int) dto.OCRLine {
	return dto.OCRLine{Text: text, Rect: image.Rect(x0, y0, x1, y1)}
}

func TestBuildTokensDropsLinesWithoutQuantities(t *testing.T) {
	tokens := BuildTokens([]dto.OCRLine{
		line("Ofrece tu tarifa", 0, 0, 200, 30),
		line("17 MIN", 100, 400, 180, 430),
		line("8.5 km", 100, 440, 180, 470),
		line("5 min | 1.2 km", 300, 100, 480, 130),
	})

	require.Len(t, tokens, 3)
	assert.True(t, tokens[0].HasTime)
	assert.False(t, tokens[0].HasDist)
	assert.Equal(t, 1020, tokens[0].Seconds)
	assert.Equal(t, 8500, tokens[1].Meters)
	assert.True(t, tokens[2].HasTime && tokens[2].HasDist)
}

func TestBuildCandidatesPairsStackedTokens(t *testing.T) {
	tokens := BuildTokens([]dto.OCRLine{
		line("17 min", 100, 400, 180, 430),
		line("8.5 km", 100, 440, 180, 470),
	})

	candidates := BuildCandidates(tokens)

	require.Len(t, candidates, 1)
	assert.Equal(t, dto.TimeDistance{Seconds: 1020, Meters: 8500}, candidates[0].TD)
	assert.Equal(t, ProvenancePair, candidates[0].Provenance)
	assert.Equal(t, image.Rect(88, 388, 192, 482), candidates[0].Rect)
}

func TestBuildCandidatesNoPairWhenFarApart(t *testing.T) {
	tokens := BuildTokens([]dto.OCRLine{
		line("17 min", 100, 400, 180, 430),
		line("8.5 km", 2100, 400, 2180, 430),
	})

	assert.Empty(t, BuildCandidates(tokens))
}

func TestBuildCandidatesSameRowSideBySide(t *testing.T) {
	tokens := BuildTokens([]dto.OCRLine{
		line("9 min", 0, 500, 60, 530),
		line("3,1 km", 190, 505, 260, 535),
	})

	candidates := BuildCandidates(tokens)

	require.Len(t, candidates, 1)
	assert.Equal(t, dto.TimeDistance{Seconds: 540, Meters: 3100}, candidates[0].TD)
}

func TestBuildCandidatesPrefersVerticalNeighbour(t *testing.T) {
	tokens := BuildTokens([]dto.OCRLine{
		line("12 min", 200, 300, 280, 330),
		line("4 km", 310, 300, 370, 330),
		line("6 km", 200, 340, 280, 370),
	})

	candidates := BuildCandidates(tokens)

	require.Len(t, candidates, 1)
	assert.Equal(t, 6000, candidates[0].TD.Meters)
}

func TestBuildCandidatesConsumesDistanceOnce(t *testing.T) {
	tokens := BuildTokens([]dto.OCRLine{
		line("5 min", 100, 100, 160, 130),
		line("7 min", 100, 180, 160, 210),
		line("2 km", 100, 140, 160, 170),
	})

	candidates := BuildCandidates(tokens)

	require.Len(t, candidates, 1)
	assert.Equal(t, 300, candidates[0].TD.Seconds)
}

func TestBuildCandidatesRejectsImplausibleDistance(t *testing.T) {
	tokens := BuildTokens([]dto.OCRLine{
		line("20 min | 750 km", 0, 0, 200, 30),
		line("0 min | 2 km", 0, 100, 200, 130),
	})

	assert.Empty(t, BuildCandidates(tokens))
}

func TestPadRectClampsAtOrigin(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 32, 42), padRect(image.Rect(5, 3, 20, 30), candidatePadding))
}
