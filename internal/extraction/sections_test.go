package extraction

import "testing"

func TestSplitSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		requirements string
		preferred    string
	}{
		{
			name:         "both anchors overlap to the end",
			input:        "About us. Requirements: Python. Nice to have: Go.",
			requirements: "requirements: python. nice to have: go.",
			preferred:    "nice to have: go.",
		},
		{
			name:         "preferred before requirements",
			input:        "Bonus points for Go. What you'll need: SQL.",
			requirements: "what you'll need: sql.",
			preferred:    "bonus points for go. what you'll need: sql.",
		},
		{
			name:         "first requirements anchor wins",
			input:        "Qualifications: Java. Must have: Rust.",
			requirements: "qualifications: java. must have: rust.",
			preferred:    "",
		},
		{
			name:         "only preferred",
			input:        "GOOD TO HAVE Docker",
			requirements: "",
			preferred:    "good to have docker",
		},
		{
			name:         "no anchors",
			input:        "We build payments infrastructure.",
			requirements: "",
			preferred:    "",
		},
		{
			name:         "empty text",
			input:        "",
			requirements: "",
			preferred:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SplitSections(tt.input)
			if got.Requirements != tt.requirements {
				t.Fatalf("requirements: expected %q, got %q", tt.requirements, got.Requirements)
			}
			if got.Preferred != tt.preferred {
				t.Fatalf("preferred: expected %q, got %q", tt.preferred, got.Preferred)
			}
		})
	}
}
