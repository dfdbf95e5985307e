package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redflag-lab/internal/domain/models"
)

func TestLocateFindsAllOccurrences(t *testing.T) {
	l := NewSpanLocator(30)
	text := "urgent reply needed. This is urgent business."
	spans := l.Locate(text)

	var urgentCount int
	for _, s := range spans {
		if strings.EqualFold(text[s.Start:s.End], "urgent") {
			urgentCount++
		}
	}
	assert.Equal(t, 2, urgentCount)
}

func TestLocateIndicesReferenceOriginalText(t *testing.T) {
	l := NewSpanLocator(30)
	text := "URGENT: enter your PASSWORD to avoid being Locked out"
	spans := l.Locate(text)

	require.NotEmpty(t, spans)
	for _, s := range spans {
		assert.GreaterOrEqual(t, s.Start, 0)
		assert.Greater(t, s.End, s.Start)
		assert.LessOrEqual(t, s.End, len(text))
		assert.NotEmpty(t, s.Label)
	}
}

func TestMergeSpansCollapsesOverlapping(t *testing.T) {
	merged := mergeSpans([]models.SuspiciousSpan{
		{Start: 0, End: 6, Label: "a", Reason: "r"},
		{Start: 4, End: 10, Label: "b", Reason: "r"},
		{Start: 10, End: 14, Label: "c", Reason: "r"},
		{Start: 20, End: 25, Label: "d", Reason: "r"},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, 0, merged[0].Start)
	assert.Equal(t, 14, merged[0].End)
	assert.Equal(t, "a", merged[0].Label)
	assert.Equal(t, 20, merged[1].Start)
	assert.Equal(t, 25, merged[1].End)
}

func TestLocateProducesNonOverlappingSpans(t *testing.T) {
	l := NewSpanLocator(30)
	spans := l.Locate("congratulations you won a prize, act now")

	require.NotEmpty(t, spans)
	for i := 1; i < len(spans); i++ {
		assert.Greater(t, spans[i].Start, spans[i-1].End)
	}
}

func TestLocateCap(t *testing.T) {
	l := NewSpanLocator(5)
	text := strings.Repeat("urgent ", 20)
	spans := l.Locate(text)

	assert.LessOrEqual(t, len(spans), 5)
}

func TestLocateNoMatches(t *testing.T) {
	l := NewSpanLocator(30)
	spans := l.Locate("see you at the park")

	assert.NotNil(t, spans)
	assert.Empty(t, spans)
}

func TestLowerASCIIPreservesLength(t *testing.T) {
	in := "Groß URGENT İstanbul"
	out := lowerASCII(in)

	assert.Equal(t, len(in), len(out))
	assert.Contains(t, out, "urgent")
}
