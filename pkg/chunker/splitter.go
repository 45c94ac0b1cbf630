package chunker

import "strings"

// Splitter cuts source text into chunks of approximately Size runes with
// Overlap runes of shared context at each boundary. Splitting is purely
// positional, so identical input and configuration always produce identical
// boundaries.
type Splitter struct {
	Size    int
	Overlap int
}

func New(size, overlap int) Splitter {
	if size <= 0 {
		size = 1500
	}
	if overlap < 0 {
		overlap = 0
	}
	return Splitter{Size: size, Overlap: overlap}
}

// Split returns the chunk texts in source order. Whitespace-only input yields
// no chunks.
func (s Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	totalLen := len(runes)

	if totalLen <= s.Size {
		return []string{text}
	}

	step := s.Size - s.Overlap
	if step <= 0 {
		step = s.Size // fallback if overlap >= size
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + s.Size
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
