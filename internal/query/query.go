// Package query turns the textual bodies posted to the catalog endpoints into
// substring filters.
//
// Author queries carry a single pair:
//
//	author=tolkien
//
// Book queries carry one or more pairs separated by semicolons:
//
//	name=hobbit;author=tolkien
//
// Keys are matched case-insensitively. Bodies are used verbatim: they are
// neither URL-decoded nor trimmed.
package query

import (
	"errors"
	"strings"
)

var (
	ErrNoParameters = errors.New("no parameters given")
	ErrBadBody      = errors.New("malformed body")
	ErrBadParameter = errors.New("parameter not allowed")
)

const (
	pairSeparator  = ";"
	valueSeparator = "="
)

// Field is an allow-listed key of a book query.
type Field string

const (
	FieldName       Field = "name"
	FieldAuthor     Field = "author"
	FieldSeriesName Field = "seriesName"
	FieldDescDE     Field = "desc_de"
	FieldDescEN     Field = "desc_en"
)

var bookFields = map[string]Field{
	strings.ToLower(string(FieldName)):       FieldName,
	strings.ToLower(string(FieldAuthor)):     FieldAuthor,
	strings.ToLower(string(FieldSeriesName)): FieldSeriesName,
	strings.ToLower(string(FieldDescDE)):     FieldDescDE,
	strings.ToLower(string(FieldDescEN)):     FieldDescEN,
}

// ParseField resolves a key case-insensitively to its canonical Field.
func ParseField(key string) (Field, bool) {
	f, ok := bookFields[strings.ToLower(key)]
	return f, ok
}

// Column returns the books table column filtered by f. FieldAuthor has no
// column of its own: it filters on the related authors' names.
func (f Field) Column() string {
	switch f {
	case FieldName:
		return "name"
	case FieldSeriesName:
		return "series_name"
	case FieldDescDE:
		return "desc_de"
	case FieldDescEN:
		return "desc_en"
	default:
		return ""
	}
}

// Filter is a case-insensitive substring predicate on one field.
type Filter struct {
	Field Field
	Value string
}

// ParseAuthorQuery extracts the searched name from an "author=<value>" body.
// Only the first pair is honoured; anything after a second "=" is dropped,
// so "author=a=b" searches for "a".
func ParseAuthorQuery(body string) (string, error) {
	parts := strings.Split(body, valueSeparator)
	if len(parts) < 2 {
		return "", ErrBadBody
	}
	if strings.ToLower(parts[0]) != string(FieldAuthor) {
		return "", ErrBadParameter
	}
	return parts[1], nil
}

// ParseBookQuery converts a "k1=v1;k2=v2" body into filters, in body order.
// The filters are meant to be combined with logical AND.
func ParseBookQuery(body string) ([]Filter, error) {
	if body == "" {
		return nil, ErrNoParameters
	}

	pairs := strings.Split(body, pairSeparator)
	filters := make([]Filter, 0, len(pairs))
	for _, pair := range pairs {
		kv := strings.Split(pair, valueSeparator)
		if len(kv) != 2 {
			return nil, ErrBadBody
		}
		field, ok := ParseField(kv[0])
		if !ok {
			return nil, ErrBadParameter
		}
		filters = append(filters, Filter{Field: field, Value: kv[1]})
	}
	return filters, nil
}
