package model

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
)

// DefaultNamer appends "Builder" to the record name.
func DefaultNamer(record string) string {
	return record + "Builder"
}

// constructorName returns NewXBuilder for exported records and newXBuilder
// for unexported ones so the constructor is as visible as the record.
func constructorName(record, builder string) string {
	if token.IsExported(record) {
		return "New" + upperFirst(builder)
	}
	return "new" + upperFirst(builder)
}

// paramName lowers the leading capitals of a field name: Name becomes name,
// ID becomes id and URLPath becomes urlPath. Keywords and the receiver name
// fall back to "value".
func paramName(field string) string {
	runes := []rune(field)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
	case n == 1 || n == len(runes):
		for i := 0; i < n; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	default:
		for i := 0; i < n-1; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	}
	name := string(runes)
	if token.IsKeyword(name) || name == receiverName || !token.IsIdentifier(name) {
		return "value"
	}
	return name
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// docLines splits a doc string into comment lines, dropping trailing blanks.
func docLines(doc string) []string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return nil
	}
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}

// uniqueName returns base, or base followed by the first counter that is not
// taken.
func uniqueName(base string, taken map[string]struct{}) string {
	if _, ok := taken[base]; !ok {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + strconv.Itoa(i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
