package schema

import (
	"context"
	"fmt"
	"strings"
)

// Extractor turns a declaration document into record schemas. Implementations
// live under internal/ and are constructed through the buildergen package.
//
// An empty typeNames list asks the extractor for every record it considers
// marked for generation.
type Extractor interface {
	Extract(ctx context.Context, doc Document, typeNames ...string) (File, error)
}

// TypeLister is implemented by extractors that can enumerate every record a
// document declares, marked or not. Interactive front ends use it to offer
// a choice.
type TypeLister interface {
	ListTypes(ctx context.Context, doc Document) ([]string, error)
}

// Format names the declaration language of a document.
type Format string

const (
	FormatGo      Format = "go"
	FormatOpenAPI Format = "openapi"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatGo, FormatOpenAPI:
		return f, nil
	case "":
		return "", nil
	default:
		return "", fmt.Errorf("schema: unknown format %q", raw)
	}
}

// FormatFromExt infers the format from a file extension. Go sources map to
// FormatGo; JSON and YAML documents are assumed to be OpenAPI.
func FormatFromExt(ext string) Format {
	switch strings.ToLower(ext) {
	case ".go":
		return FormatGo
	case ".json", ".yaml", ".yml":
		return FormatOpenAPI
	default:
		return ""
	}
}
