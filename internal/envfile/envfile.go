// Package envfile reads and writes shell-compatible environment files.
// The same format is accepted by env.file in the config and printed by
// --print-env, so printed output can be evaluated by a POSIX shell or saved
// and loaded back.
package envfile

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/insilichem/pychimera/internal/messages"
)

// File is a parsed environment file.
type File struct {
	// Set maps variables to their assigned values.
	Set map[string]string
	// Unset lists variables removed with "unset KEY", in file order.
	Unset []string
}

// Parse reads env file content.
// Blank lines and # comments are skipped; "export " prefixes are accepted.
func Parse(content string) (File, error) {
	file := File{Set: make(map[string]string)}
	if content == "" {
		return file, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		entry, err := parseLine(scanner.Text())
		if err != nil {
			return File{}, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		switch entry.kind {
		case lineSet:
			file.Set[entry.key] = entry.value
			file.Unset = dropKey(file.Unset, entry.key)
		case lineUnset:
			delete(file.Set, entry.key)
			file.Unset = append(dropKey(file.Unset, entry.key), entry.key)
		}
	}
	if err := scanner.Err(); err != nil {
		return File{}, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}
	return file, nil
}

// Format renders f with sorted export lines followed by unset lines.
func Format(f File) string {
	keys := make([]string, 0, len(f.Set))
	for key := range f.Set {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "export %s=%s\n", key, encodeValue(f.Set[key]))
	}
	unset := append([]string(nil), f.Unset...)
	sort.Strings(unset)
	for _, key := range unset {
		fmt.Fprintf(&b, "unset %s\n", key)
	}
	return b.String()
}

type lineKind int

const (
	lineSkip lineKind = iota
	lineSet
	lineUnset
)

type line struct {
	kind  lineKind
	key   string
	value string
}

// parseLine parses a single line.
func parseLine(raw string) (line, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return line{}, nil
	}
	if rest, ok := strings.CutPrefix(trimmed, "unset "); ok {
		key := strings.TrimSpace(rest)
		if err := validateKey(key); err != nil {
			return line{}, err
		}
		return line{kind: lineUnset, key: key}, nil
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))

	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return line{}, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	key := strings.TrimSpace(trimmed[:idx])
	if err := validateKey(key); err != nil {
		return line{}, err
	}
	value := strings.TrimSpace(trimmed[idx+1:])
	var err error
	switch {
	case strings.HasPrefix(value, `"`):
		value, err = parseDoubleQuotedValue(value)
	case strings.HasPrefix(value, `'`):
		value, err = parseSingleQuotedValue(value)
	}
	if err != nil {
		return line{}, err
	}
	return line{kind: lineSet, key: key, value: value}, nil
}

// validateKey accepts shell variable names plus the parentheses Windows uses
// in names like PROGRAMFILES(X86).
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	for i, r := range key {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '(' || r == ')'):
		default:
			return fmt.Errorf(messages.EnvfileInvalidKeyFmt, key)
		}
	}
	return nil
}

// parseDoubleQuotedValue parses a double-quoted value and validates trailing content.
func parseDoubleQuotedValue(value string) (string, error) {
	closing := findClosingDoubleQuote(value)
	if closing < 0 {
		return "", fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
	}
	if err := validateQuotedValueSuffix(value[closing+1:]); err != nil {
		return "", err
	}
	return unescapeDoubleQuotedValue(value[1:closing]), nil
}

// parseSingleQuotedValue parses a single-quoted value. Single quotes take no escapes.
func parseSingleQuotedValue(value string) (string, error) {
	if len(value) < 2 {
		return "", fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
	}
	closingOffset := strings.IndexByte(value[1:], '\'')
	if closingOffset < 0 {
		return "", fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
	}
	closing := 1 + closingOffset
	if err := validateQuotedValueSuffix(value[closing+1:]); err != nil {
		return "", err
	}
	return value[1:closing], nil
}

// findClosingDoubleQuote returns the index of the first unescaped closing quote in value.
func findClosingDoubleQuote(value string) int {
	escaped := false
	for i := 1; i < len(value); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch value[i] {
		case '\\':
			escaped = true
		case '"':
			return i
		}
	}
	return -1
}

func validateQuotedValueSuffix(suffix string) error {
	trimmed := strings.TrimSpace(suffix)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	return fmt.Errorf(messages.EnvfileInvalidQuotedSuffix)
}

// unescapeDoubleQuotedValue decodes the escapes a POSIX shell honors inside
// double quotes.
func unescapeDoubleQuotedValue(escaped string) string {
	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == '\\' && i+1 < len(escaped) {
			switch escaped[i+1] {
			case '\\', '"', '$', '`':
				b.WriteByte(escaped[i+1])
				i++
				continue
			}
		}
		b.WriteByte(escaped[i])
	}
	return b.String()
}

// encodeValue quotes val when a shell would otherwise split or expand it.
// Single quotes are preferred; values containing one fall back to double quotes.
func encodeValue(val string) string {
	if val != "" && !strings.ContainsAny(val, " \t\n\r#\"'$`\\;&|<>(){}*?!~") {
		return val
	}
	if !strings.Contains(val, "'") {
		return "'" + val + "'"
	}
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")
	return `"` + replacer.Replace(val) + `"`
}

func dropKey(keys []string, key string) []string {
	var out []string
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
