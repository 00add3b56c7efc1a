package logger

import (
	"strings"

	"github.com/spigell/skill-matcher/internal/posting"
	"go.uber.org/zap"
)

const (
	// FieldRunID is the structured log field key for the invocation identifier.
	FieldRunID = "run_id"
	// FieldCompany is the structured log field key for the posting company.
	FieldCompany = "company"
	// FieldTitle is the structured log field key for the posting title.
	FieldTitle = "title"
	// FieldURL is the structured log field key for the posting url.
	FieldURL = "url"
	// FieldDescription is the structured log field key for the description preview.
	FieldDescription = "description"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// PostingFields returns the fields identifying a posting. Empty values are skipped.
func PostingFields(p *posting.Posting) []zap.Field {
	if p == nil {
		return nil
	}
	return StringFields(
		StringField{Key: FieldCompany, Value: p.Company},
		StringField{Key: FieldTitle, Value: p.Title},
		StringField{Key: FieldURL, Value: p.URL},
	)
}

// WithRunID attaches the invocation identifier to the provided logger.
func WithRunID(logger *zap.Logger, id string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldRunID, Value: id})...)
}

// DescriptionPreview returns a field with the start of the posting description.
// Whitespace runs, newlines included, are collapsed so that a preview stays on
// one console line.
func DescriptionPreview(p *posting.Posting, limit int) zap.Field {
	if p == nil {
		return zap.Skip()
	}
	return zap.String(FieldDescription, preview(p.Description, limit))
}

func preview(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
