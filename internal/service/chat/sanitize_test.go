package chat

import "testing"

func TestCleanInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hello",
			expected: "Hello",
		},
		{
			name:     "leading and trailing whitespace",
			input:    "  Hello\n\n",
			expected: "Hello",
		},
		{
			name:     "tabs and newlines around text",
			input:    "\t\r\n question \t",
			expected: "question",
		},
		{
			name:     "interior runs collapse to one space",
			input:    "how  do\n\nI\treset   my password",
			expected: "how do I reset my password",
		},
		{
			name:     "whitespace only",
			input:    " \n\t ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanInput(tt.input)
			if got != tt.expected {
				t.Errorf("CleanInput(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if again := CleanInput(got); again != got {
				t.Errorf("CleanInput is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestStripReasoning(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no markers passes through",
			input:    "plain reply",
			expected: "plain reply",
		},
		{
			name:     "reasoning block removed",
			input:    "<think>working it out</think>\n\nThe answer is 42.",
			expected: "The answer is 42.",
		},
		{
			name:     "text before the block is discarded too",
			input:    "preamble <think>hmm</think> reply",
			expected: "reply",
		},
		{
			name:     "open marker without close passes through",
			input:    "<think>never closed",
			expected: "<think>never closed",
		},
		{
			name:     "close marker alone passes through",
			input:    "odd</think> text",
			expected: "odd</think> text",
		},
		{
			name:     "empty remainder",
			input:    "<think>only reasoning</think>",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripReasoning(tt.input); got != tt.expected {
				t.Errorf("StripReasoning(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
