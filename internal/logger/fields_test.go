package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skill-matcher/internal/posting"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  company  ", Value: "  Stripe  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "company" || fields[0].String != "Stripe" {
		t.Fatalf("unexpected company field: %+v", fields[0])
	}

	empty := StringFields()
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Ensure logging with the fallback logger does not panic.
	enriched.Info("another log")
}

func TestPostingFields(t *testing.T) {
	fields := PostingFields(&posting.Posting{Company: "Stripe", Title: " Intern ", URL: ""})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldCompany || fields[0].String != "Stripe" {
		t.Fatalf("unexpected company field: %+v", fields[0])
	}

	if fields[1].Key != FieldTitle || fields[1].String != "Intern" {
		t.Fatalf("unexpected title field: %+v", fields[1])
	}

	if PostingFields(nil) != nil {
		t.Fatalf("expected no fields for nil posting")
	}
}

func TestWithRunID(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithRunID(zap.New(core), "3f1c").Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if got := entries[0].ContextMap()[FieldRunID]; got != "3f1c" {
		t.Fatalf("expected run id 3f1c, got %q", got)
	}

	// Ensure logging with the fallback logger does not panic.
	WithRunID(nil, "3f1c").Info("another log")
}

func TestDescriptionPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		limit       int
		expect      string
	}{
		{
			name:        "empty when limit non-positive",
			description: "Requirements: Python",
			limit:       0,
			expect:      "",
		},
		{
			name:        "short description kept",
			description: "Requirements: Python",
			limit:       40,
			expect:      "Requirements: Python",
		},
		{
			name:        "multi-line description collapsed",
			description: "  Requirements:\n\t- Python\n- SQL  ",
			limit:       40,
			expect:      "Requirements: - Python - SQL",
		},
		{
			name:        "cut on runes with ellipsis",
			description: "Anforderungen: Größe",
			limit:       17,
			expect:      "Anforderungen: Gr...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			field := DescriptionPreview(&posting.Posting{Description: tt.description}, tt.limit)
			if field.Key != FieldDescription || field.String != tt.expect {
				t.Fatalf("expected %q, got %+v", tt.expect, field)
			}
		})
	}

	if field := DescriptionPreview(nil, 10); field.Type != zapcore.SkipType {
		t.Fatalf("expected skip field for nil posting, got %+v", field)
	}
}
