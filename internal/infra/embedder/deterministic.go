package embedder

import (
	"context"
	"hash/fnv"
	"strings"
)

// DeterministicEmbedder hashes words into a bag-of-words vector. It needs no
// network, and texts sharing words get similar vectors, which is enough for
// local runs and tests.
type DeterministicEmbedder struct {
	dim int
}

// NewDeterministicEmbedder constructs the embedder.
func NewDeterministicEmbedder(dim int) *DeterministicEmbedder {
	if dim <= 0 {
		dim = 256
	}
	return &DeterministicEmbedder{dim: dim}
}

// Embed converts each text into a hashed term-frequency vector.
func (e *DeterministicEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector := make([]float32, e.dim)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			hash := fnv.New64a()
			_, _ = hash.Write([]byte(strings.Trim(word, ".,;:!?\"'()")))
			vector[hash.Sum64()%uint64(e.dim)]++
		}
		vectors[i] = vector
	}
	return vectors, nil
}
