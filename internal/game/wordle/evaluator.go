// Package wordle implements the guess scoring rules for the word game.
package wordle

import (
	"strings"

	"monad-wordle/internal/model"
)

// Feedback classifies one guess letter against the secret.
type Feedback string

const (
	// FeedbackCorrect means right letter in the right position.
	FeedbackCorrect Feedback = "correct"
	// FeedbackPresent means the letter occurs elsewhere in the secret,
	// within its remaining multiplicity.
	FeedbackPresent Feedback = "present"
	// FeedbackAbsent means the letter has no remaining occurrence.
	FeedbackAbsent Feedback = "absent"
)

// Evaluate scores a guess against the secret with the standard two-pass
// algorithm. Pass one marks exact-position matches and counts the
// secret's unmatched letters; pass two resolves present/absent for the
// rest, consuming one counted occurrence per present mark. The pass
// order matters for repeated letters: an exact match always wins the
// letter over an earlier out-of-position one.
//
// Both inputs must already be normalized lowercase words of equal
// length; Evaluate is deterministic and side-effect-free.
func Evaluate(guess, secret string) []Feedback {
	n := len(guess)
	res := make([]Feedback, n)

	// Occurrences of each secret letter outside exact matches (a-z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = FeedbackCorrect
		} else {
			counts[secret[i]-'a']++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == FeedbackCorrect {
			continue
		}
		j := int(guess[i] - 'a')
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = FeedbackPresent
			counts[j]--
		} else {
			res[i] = FeedbackAbsent
		}
	}
	return res
}

// Normalize lowercases and trims a raw guess. Length and dictionary
// checks stay with the caller.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsWord reports whether s is a well-formed word: exactly five
// lowercase ASCII letters.
func IsWord(s string) bool {
	if len(s) != model.WordLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
