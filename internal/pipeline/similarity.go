package pipeline

import "strings"

// Similarity returns a normalized measure of how close two strings are:
// 1.0 for equal strings (after lower-casing and trimming), 0.0 when exactly
// one side is empty, otherwise 1 - levenshtein/maxLen. Runs in O(n*m) time
// and O(min(n,m)) extra space.
func Similarity(a, b string) float64 {
	s1 := []rune(strings.ToLower(strings.TrimSpace(a)))
	s2 := []rune(strings.ToLower(strings.TrimSpace(b)))

	if string(s1) == string(s2) {
		return 1
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}

	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}

	return 1 - float64(levenshtein(s1, s2))/float64(maxLen)
}

// levenshtein computes edit distance with unit costs using two rolling rows
// sized by the shorter string.
func levenshtein(s1, s2 []rune) int {
	// keep the row arrays sized by the shorter side
	if len(s2) > len(s1) {
		s1, s2 = s2, s1
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
