package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneStore_AddCountsWords(t *testing.T) {
	s := NewToneStore(tempFile(t, "tone.json"))

	sample, err := s.Add("I build things that outlast the demo.", "cover_letter_fanduel", "closing line")
	require.NoError(t, err)
	assert.Equal(t, 1, sample.ID)
	assert.Equal(t, 7, sample.WordCount)

	sample2, err := s.Add("Short one.", "note", "")
	require.NoError(t, err)
	assert.Equal(t, 2, sample2.ID)

	assert.Equal(t, 9, TotalWords(s.Samples()))
}

func TestScanIndex_MarkScanned(t *testing.T) {
	i := NewScanIndex(tempFile(t, "scan_index.json"))

	assert.Empty(t, i.Scanned())

	require.NoError(t, i.MarkScanned("02-Cover-Letters/fanduel.txt", "02-Cover-Letters/reddit.txt"))

	scanned := i.Scanned()
	assert.Len(t, scanned, 2)
	assert.NotEmpty(t, scanned["02-Cover-Letters/fanduel.txt"])

	// Marking again is idempotent on the key set
	require.NoError(t, i.MarkScanned("02-Cover-Letters/fanduel.txt"))
	assert.Len(t, i.Scanned(), 2)
}
