package errors

import (
	"fmt"
	"strings"
)

// SuggestName suggests a defined name when an unknown one is referenced.
// It uses Levenshtein distance to find the closest candidate.
func SuggestName(unknown string, validNames []string) string {
	if len(validNames) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, name := range validNames {
		dist := levenshteinDistance(unknown, name)
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	// Only suggest when the names are reasonably close
	if minDistance < 3 || (minDistance < 5 && minDistance*2 < len(bestMatch)) {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	if len(validNames) > 5 {
		return fmt.Sprintf("Defined names include: %s, ...", strings.Join(validNames[:5], ", "))
	}
	return fmt.Sprintf("Defined names: %s", strings.Join(validNames, ", "))
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	r1, r2 := []rune(s1), []rune(s2)
	len1, len2 := len(r1), len(r2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
