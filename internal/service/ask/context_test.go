package ask

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexaid/counsel/vectorindex"
)

func match(score float32, title, content string) vectorindex.Match {
	return vectorindex.Match{
		Score: score,
		Metadata: map[string]any{
			"title":   title,
			"content": content,
		},
	}
}

func TestBoostPenaltyQuestion(t *testing.T) {
	matches := []vectorindex.Match{
		match(0.8, "Section 12", "Rules on sidewalk vending and stall permits."),
		match(0.8, "Section 41", "Parking in prohibited areas. Penalty: 400.00"),
	}

	boosted := Boost("What is the penalty for illegal parking?", matches)
	require.Len(t, boosted, 2)

	assert.Equal(t, "Section 41", boosted[0].Metadata["title"])
	assert.InDelta(t, 1.0, boosted[0].Score, 1e-6)
	assert.InDelta(t, 0.8, boosted[1].Score, 1e-6)
}

func TestBoostIgnoresUnrelatedQuestion(t *testing.T) {
	matches := []vectorindex.Match{
		match(0.7, "Section 12", "Rules on sidewalk vending."),
		match(0.6, "Section 41", "Parking penalty provisions."),
	}

	boosted := Boost("Who may vote in barangay elections?", matches)
	require.Len(t, boosted, 2)
	assert.Equal(t, "Section 12", boosted[0].Metadata["title"])
	assert.InDelta(t, 0.7, boosted[0].Score, 1e-6)
}

func TestBoostStableOnTies(t *testing.T) {
	matches := []vectorindex.Match{
		match(0.5, "Section 1", "Parking zone A penalty schedule."),
		match(0.5, "Section 2", "Parking zone B penalty schedule."),
	}

	boosted := Boost("parking fines?", matches)
	assert.Equal(t, "Section 1", boosted[0].Metadata["title"])
	assert.Equal(t, "Section 2", boosted[1].Metadata["title"])
}

func TestBoostDoesNotMutateInput(t *testing.T) {
	matches := []vectorindex.Match{
		match(0.5, "Section 41", "Parking penalty."),
	}

	Boost("parking?", matches)
	assert.InDelta(t, 0.5, matches[0].Score, 1e-6)
}

func TestBuildContextLabelsAndJoins(t *testing.T) {
	matches := []vectorindex.Match{
		match(0.9, "Section 41", "Parking and waiting in prohibited areas Penalty: 400.00"),
		match(0.8, "", "Unlabeled passage about towing procedures and fees."),
	}

	context, ok := BuildContext(matches)
	require.True(t, ok)

	assert.Contains(t, context, "Section 41: Parking and waiting")
	assert.Contains(t, context, "\n\n")
	assert.True(t, strings.Contains(context, "Unlabeled passage"))
}

func TestBuildContextMinimumLength(t *testing.T) {
	short := match(0.9, "", strings.Repeat("a", 49))
	_, ok := BuildContext([]vectorindex.Match{short})
	assert.False(t, ok, "49 chars is below the minimum")

	long := match(0.9, "", strings.Repeat("a", 50))
	context, ok := BuildContext([]vectorindex.Match{long})
	assert.True(t, ok, "50 chars meets the minimum")
	assert.Len(t, context, 50)
}

func TestBuildContextNoMatches(t *testing.T) {
	_, ok := BuildContext(nil)
	assert.False(t, ok)

	_, ok = BuildContext([]vectorindex.Match{{Score: 0.9, Metadata: map[string]any{}}})
	assert.False(t, ok, "matches without content contribute nothing")
}
