package store

import (
	"strings"
	"time"
)

// ToneSample is one ingested writing sample.
type ToneSample struct {
	ID        int    `json:"id"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Context   string `json:"context"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

type toneData struct {
	Samples []ToneSample `json:"samples"`
}

// ToneStore is the voice sample library backed by tone_samples.json.
type ToneStore struct {
	Path string
}

func NewToneStore(path string) *ToneStore {
	return &ToneStore{Path: path}
}

func (s *ToneStore) Samples() []ToneSample {
	return LoadJSON(s.Path, toneData{}).Samples
}

// Add appends a writing sample with its word count.
func (s *ToneStore) Add(text, source, context string) (ToneSample, error) {
	data := LoadJSON(s.Path, toneData{})

	entry := ToneSample{
		ID:        len(data.Samples) + 1,
		Timestamp: time.Now().Format(time.RFC3339),
		Source:    source,
		Context:   context,
		Text:      text,
		WordCount: len(strings.Fields(text)),
	}
	data.Samples = append(data.Samples, entry)

	if err := SaveJSON(s.Path, data); err != nil {
		return ToneSample{}, err
	}
	return entry, nil
}

// TotalWords sums word counts across samples.
func TotalWords(samples []ToneSample) int {
	total := 0
	for _, s := range samples {
		total += s.WordCount
	}
	return total
}

type scanIndexData struct {
	Scanned map[string]string `json:"scanned"`
}

// ScanIndex records which material files have already been scanned for
// tone, keyed by path relative to the resume workspace. Re-scans are
// idempotent: an indexed file is skipped unless forced.
type ScanIndex struct {
	Path string
}

func NewScanIndex(path string) *ScanIndex {
	return &ScanIndex{Path: path}
}

func (i *ScanIndex) Scanned() map[string]string {
	data := LoadJSON(i.Path, scanIndexData{})
	if data.Scanned == nil {
		data.Scanned = map[string]string{}
	}
	return data.Scanned
}

// MarkScanned stamps the given relative paths with the current time.
func (i *ScanIndex) MarkScanned(rels ...string) error {
	data := LoadJSON(i.Path, scanIndexData{})
	if data.Scanned == nil {
		data.Scanned = map[string]string{}
	}
	stamp := time.Now().Format(time.RFC3339)
	for _, rel := range rels {
		data.Scanned[rel] = stamp
	}
	return SaveJSON(i.Path, data)
}
