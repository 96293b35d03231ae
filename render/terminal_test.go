package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charlesren/action_word_monitor/aggregator"
	"github.com/charlesren/action_word_monitor/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSnapshot_Placeholder(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer("Action Word Frequency").WithOutput(&buf)

	agg := aggregator.New(chart.DefaultActions)
	err := r.HandleSnapshot(chart.BuildSnapshot(agg.Counts()))

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Action Word Frequency")
	assert.Contains(t, out, chart.PlaceholderLabel)
	assert.Contains(t, out, "100.0%")
}

func TestHandleSnapshot_Slices(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer("Action Word Frequency").WithOutput(&buf)

	agg := aggregator.New(chart.DefaultActions)
	agg.Update("found and saw")
	agg.Update("found again")

	err := r.HandleSnapshot(chart.BuildSnapshot(agg.Counts()))

	require.NoError(t, err)
	out := buf.String()
	for _, word := range chart.DefaultActions {
		assert.Contains(t, out, word)
	}
	// found=2/3, saw=1/3
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "33.3%")
}

func TestRenderBar_Width(t *testing.T) {
	r := NewTerminalRenderer("t")

	agg := aggregator.New(aggregator.Vocabulary{"found", "saw"})
	agg.Update("found and saw")
	bar := r.renderBar(chart.BuildSnapshot(agg.Counts()))

	// 条宽固定，与切片数量无关（剔除ANSI转义后按字符计）
	assert.Equal(t, defaultBarWidth, strings.Count(bar, "█"))
}
