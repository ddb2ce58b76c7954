package rag

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// Embeddings are stored as a flat little-endian file: a uint32 vector
// count, a uint32 dimension, then count*dim float32 values.

func saveEmbeddings(path string, vectors [][]float32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create embeddings file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(vectors))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(dim)); err != nil {
		return err
	}
	for _, vec := range vectors {
		if len(vec) != dim {
			return fmt.Errorf("inconsistent embedding dimension: %d != %d", len(vec), dim)
		}
		if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
			return err
		}
	}
	return w.Flush()
}

func loadEmbeddings(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open embeddings file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var count, dim uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read embeddings header: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("failed to read embeddings header: %w", err)
	}

	vectors := make([][]float32, count)
	for i := range vectors {
		vec := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("failed to read embedding %d: %w", i, err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
