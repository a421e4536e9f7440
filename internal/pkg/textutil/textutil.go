// Package textutil provides text processing helpers for document retrieval.
package textutil

import (
	"unicode/utf8"
)

// TruncateString truncates a string to the given maximum number of Unicode
// characters.
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen])
}

// SplitIntoChunks splits text into overlapping chunks. chunkSize is the size
// of each chunk in Unicode characters, overlap is the shared size between
// consecutive chunks. The stride is chunkSize-overlap, so concatenating the
// chunks and dropping each chunk's leading overlap reconstructs the text.
func SplitIntoChunks(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	step := chunkSize - overlap

	for i := 0; i < len(runes); i += step {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}

	return chunks
}

// RuneLen returns the number of Unicode characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
