// Package wordle tests for the guess scoring rules.
package wordle

import (
	"testing"
)

// TestEvaluate tests guess scoring against known boards.
func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		secret   string
		expected []Feedback
	}{
		{
			"exact match",
			"crane", "crane",
			[]Feedback{FeedbackCorrect, FeedbackCorrect, FeedbackCorrect, FeedbackCorrect, FeedbackCorrect},
		},
		{
			"no letters shared",
			"lousy", "crane",
			[]Feedback{FeedbackAbsent, FeedbackAbsent, FeedbackAbsent, FeedbackAbsent, FeedbackAbsent},
		},
		{
			"single wrong letter",
			"crate", "crane",
			[]Feedback{FeedbackCorrect, FeedbackCorrect, FeedbackCorrect, FeedbackAbsent, FeedbackCorrect},
		},
		{
			"repeated guess letters against fewer in secret",
			"lolly", "allow",
			[]Feedback{FeedbackPresent, FeedbackPresent, FeedbackCorrect, FeedbackAbsent, FeedbackAbsent},
		},
		{
			"duplicate letter consumed by exact match first",
			"eerie", "crane",
			[]Feedback{FeedbackAbsent, FeedbackAbsent, FeedbackPresent, FeedbackAbsent, FeedbackCorrect},
		},
		{
			"two presents plus two corrects",
			"babes", "abbey",
			[]Feedback{FeedbackPresent, FeedbackPresent, FeedbackCorrect, FeedbackCorrect, FeedbackAbsent},
		},
		{
			"all letters present but displaced",
			"dread", "adder",
			[]Feedback{FeedbackPresent, FeedbackPresent, FeedbackPresent, FeedbackPresent, FeedbackPresent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.guess, tt.secret)
			if len(result) != len(tt.expected) {
				t.Fatalf("Evaluate(%q, %q) returned %d marks, want %d",
					tt.guess, tt.secret, len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("Evaluate(%q, %q)[%d] = %q, want %q",
						tt.guess, tt.secret, i, result[i], tt.expected[i])
				}
			}
		})
	}
}

// TestNormalize tests raw input normalization.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"already normalized", "crane", "crane"},
		{"uppercase", "CRANE", "crane"},
		{"mixed case", "CrAnE", "crane"},
		{"surrounding whitespace", "  crane\n", "crane"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

// TestIsWord tests the well-formedness check.
func TestIsWord(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		expected bool
	}{
		{"valid word", "crane", true},
		{"too short", "cane", false},
		{"too long", "cranes", false},
		{"empty", "", false},
		{"uppercase rejected", "Crane", false},
		{"digit rejected", "cran3", false},
		{"hyphen rejected", "cra-e", false},
		{"non-ascii rejected", "crané", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWord(tt.word); got != tt.expected {
				t.Errorf("IsWord(%q) = %v, want %v", tt.word, got, tt.expected)
			}
		})
	}
}
