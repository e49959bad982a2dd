package ndjsonv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ndjsonv"
)

func TestSummarize(t *testing.T) {
	assert.Equal(t, ndjsonv.Summary{}, ndjsonv.Summarize(nil))

	inputs := []string{"testdata/valid.ndjson", "testdata/invalid1.ndjson", "testdata/invalid2.ndjson"}
	res, err := ndjsonv.ValidateFiles(context.Background(), inputs, stdDriver(t), ndjsonv.Options{})
	require.NoError(t, err)

	s := ndjsonv.Summarize(res)
	assert.Equal(t, ndjsonv.Summary{
		TotalFiles:      3,
		FilesWithErrors: 2,
		TotalErrors:     9,
		TotalLines:      16,
		ValidLines:      7,
	}, s)
	assert.False(t, s.OK())
	assert.Equal(t, s.TotalLines, s.ValidLines+s.TotalErrors+s.SkippedLines)
}

func TestSummarize_AllValid(t *testing.T) {
	res, err := ndjsonv.ValidateFiles(context.Background(), []string{"testdata/valid.ndjson"}, stdDriver(t), ndjsonv.Options{})
	require.NoError(t, err)
	assert.True(t, ndjsonv.Summarize(res).OK())
}
