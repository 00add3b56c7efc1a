// Package levels defines the skill → proficiency mapping attached to postings
// and its text encoding used in tabular files.
package levels

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	// Basic is the lowest proficiency a posting can ask for.
	Basic = 1
	// Intermediate is used when a skill is mentioned without qualifiers.
	Intermediate = 2
	// Strong is the highest proficiency a posting can ask for.
	Strong = 3
)

// Levels maps a lowercase skill name to a proficiency level.
type Levels map[string]int

// DecodeError reports a skill mapping that could not be decoded.
type DecodeError struct {
	Input   string
	Offset  int
	Message string
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("decode skill levels %q: %s at offset %d", e.Input, e.Message, e.Offset)
	}
	return fmt.Sprintf("decode skill levels %q: %s", e.Input, e.Message)
}

// Skills returns skill names in lexical order.
func (l Levels) Skills() []string {
	skills := make([]string, 0, len(l))
	for skill := range l {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

// Encode renders the mapping as a dict literal with sorted keys,
// e.g. {'go': 1, 'python': 3}.
func (l Levels) Encode() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, skill := range l.Skills() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(skill))
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(l[skill]))
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (l Levels) MarshalText() ([]byte, error) {
	return []byte(l.Encode()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Levels) UnmarshalText(text []byte) error {
	decoded, err := Decode(string(text))
	if err != nil {
		return err
	}
	*l = decoded
	return nil
}

// Decode parses a text-encoded mapping. Both dict literals with single or
// double quoted keys and JSON objects are accepted. Blank input decodes to an
// empty mapping. Levels must be within Basic..Strong.
func Decode(s string) (Levels, error) {
	if strings.TrimSpace(s) == "" {
		return Levels{}, nil
	}

	p := &parser{input: s}
	out, err := p.parse()
	if err != nil {
		return nil, err
	}
	if err := validate(s, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Coerce accepts either an encoded string or an already decoded mapping.
// Generic maps (for example from YAML or JSON) are decoded with mapstructure.
func Coerce(v any) (Levels, error) {
	switch val := v.(type) {
	case nil:
		return Levels{}, nil
	case string:
		return Decode(val)
	case []byte:
		return Decode(string(val))
	case Levels:
		return copyChecked(val)
	case map[string]int:
		return copyChecked(val)
	}

	var decoded map[string]int
	if err := mapstructure.Decode(v, &decoded); err != nil {
		return nil, &DecodeError{Input: fmt.Sprintf("%v", v), Offset: -1, Message: err.Error()}
	}
	return copyChecked(decoded)
}

func copyChecked(m map[string]int) (Levels, error) {
	out := make(Levels, len(m))
	for skill, level := range m {
		out[skill] = level
	}
	if err := validate(fmt.Sprintf("%v", m), out); err != nil {
		return nil, err
	}
	return out, nil
}

func validate(input string, l Levels) error {
	for _, skill := range l.Skills() {
		level := l[skill]
		if level < Basic || level > Strong {
			return &DecodeError{
				Input:   input,
				Offset:  -1,
				Message: fmt.Sprintf("level %d for %q is outside %d..%d", level, skill, Basic, Strong),
			}
		}
	}
	return nil
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
