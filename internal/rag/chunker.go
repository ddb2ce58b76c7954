// Package rag maintains the local semantic search index over resume
// materials: OpenAI embeddings stored in a flat binary file next to a
// JSON chunk index, searched by cosine similarity. No vector database
// involved.
package rag

import (
	"regexp"
	"strings"
)

const (
	maxChunkChars = 800
	chunkOverlap  = 100
	minChunkChars = 50
)

var (
	paragraphSplitRe = regexp.MustCompile(`\n{2,}`)
	sentenceSplitRe  = regexp.MustCompile(`([.!?])\s+`)
)

// ChunkText splits text into overlapping chunks, keeping paragraph
// boundaries where possible and splitting oversized paragraphs on
// sentences. Chunks shorter than 50 characters are dropped.
func ChunkText(text string) []string {
	var paragraphs []string
	for _, p := range paragraphSplitRe.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var chunks []string
	current := ""

	for _, para := range paragraphs {
		if len(para) > maxChunkChars {
			for _, sent := range splitSentences(para) {
				if len(current)+len(sent) > maxChunkChars && current != "" {
					chunks = append(chunks, strings.TrimSpace(current))
					current = tail(current, chunkOverlap) + " " + sent
				} else {
					current += " " + sent
				}
			}
		} else {
			if len(current)+len(para) > maxChunkChars && current != "" {
				chunks = append(chunks, strings.TrimSpace(current))
				current = tail(current, chunkOverlap) + "\n\n" + para
			} else {
				current += "\n\n" + para
			}
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	var out []string
	for _, c := range chunks {
		if len(c) > minChunkChars {
			out = append(out, c)
		}
	}
	return out
}

// splitSentences breaks a paragraph after sentence-ending punctuation.
func splitSentences(para string) []string {
	marked := sentenceSplitRe.ReplaceAllString(para, "$1\x00")
	parts := strings.Split(marked, "\x00")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
