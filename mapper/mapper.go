/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mapper defines how structural property names become output keys.
package mapper

import (
	"strings"
	"unicode"

	"github.com/suparena/projector/model"
)

// PropertyMapper maps a property name to the key it is emitted under. Returning an
// empty or blank key for a declared property is a caller error.
type PropertyMapper interface {
	MapProperty(name string) string
}

// Func adapts a plain function to PropertyMapper.
type Func func(name string) string

// MapProperty calls f(name).
func (f Func) MapProperty(name string) string {
	return f(name)
}

// Provider selects the mapper for a schema type. It may return nil when it has no
// mapper for the type.
type Provider func(m model.Lookup, t *model.SchemaType) PropertyMapper

// Constant returns a provider that always selects pm.
func Constant(pm PropertyMapper) Provider {
	return func(model.Lookup, *model.SchemaType) PropertyMapper {
		return pm
	}
}

type identity struct{}

func (identity) MapProperty(name string) string { return name }

// Identity emits every property under its own name.
var Identity PropertyMapper = identity{}

// DefaultProvider always selects Identity, regardless of model or type.
var DefaultProvider Provider = Constant(Identity)

// Lower emits lower-cased property names.
var Lower PropertyMapper = Func(strings.ToLower)

// CamelCase emits lowerCamelCase keys ("OrderID" -> "orderId", "home_city" -> "homeCity").
var CamelCase PropertyMapper = Func(func(name string) string {
	tokens := Tokenize(name)
	var b strings.Builder
	b.Grow(len(name))
	for i, tok := range tokens {
		tok = strings.ToLower(tok)
		if i > 0 {
			r := []rune(tok)
			r[0] = unicode.ToUpper(r[0])
			tok = string(r)
		}
		b.WriteString(tok)
	}
	return b.String()
})

// SnakeCase emits snake_case keys ("OrderID" -> "order_id").
var SnakeCase PropertyMapper = Func(func(name string) string {
	tokens := Tokenize(name)
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}
	return strings.Join(tokens, "_")
})

// Alias emits the table entry for names it contains and defers to fallback for the
// rest. A nil fallback means Identity.
func Alias(table map[string]string, fallback PropertyMapper) PropertyMapper {
	if fallback == nil {
		fallback = Identity
	}
	aliases := make(map[string]string, len(table))
	for k, v := range table {
		aliases[k] = v
	}
	return Func(func(name string) string {
		if alias, ok := aliases[name]; ok {
			return alias
		}
		return fallback.MapProperty(name)
	})
}

// ByName selects a naming policy by its flag name: identity, lower, camel, snake.
func ByName(name string) (PropertyMapper, bool) {
	switch strings.ToLower(name) {
	case "", "identity", "none":
		return Identity, true
	case "lower":
		return Lower, true
	case "camel", "camelcase":
		return CamelCase, true
	case "snake", "snakecase", "snake_case":
		return SnakeCase, true
	default:
		return nil, false
	}
}

// Tokenize splits an identifier on separators and case changes.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "homeCity" -> ["home", "City"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "home_city" -> ["home", "city"]
func Tokenize(s string) []string {
	var (
		tokens  []string
		current []rune
	)
	runes := []rune(s)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			flush()
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			// lower->Upper starts a token; so does the last capital of an acronym.
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return tokens
}
