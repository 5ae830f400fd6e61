/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package model

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-openapi/strfmt"
	"gopkg.in/yaml.v3"

	"github.com/suparena/projector/errors"
)

// Document is the YAML form of a model.
type Document struct {
	Namespace string         `yaml:"namespace,omitempty"`
	Types     []TypeDocument `yaml:"types"`
}

// TypeDocument declares one schema type.
type TypeDocument struct {
	Name        string             `yaml:"name"`
	Kind        string             `yaml:"kind,omitempty"`
	Key         []string           `yaml:"key,omitempty"`
	KeyTemplate map[string]string  `yaml:"keyTemplate,omitempty"`
	Properties  []PropertyDocument `yaml:"properties"`
}

// PropertyDocument declares one structural property.
type PropertyDocument struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

var primitiveTypes = map[string]bool{
	"string":  true,
	"int":     true,
	"int32":   true,
	"int64":   true,
	"number":  true,
	"float":   true,
	"double":  true,
	"bool":    true,
	"boolean": true,
	"any":     true,
}

// LoadFile loads and parses a YAML model file from the given path.
func LoadFile(path string, opts ...Option) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	return Parse(data, opts...)
}

// Parse parses YAML data into a Model. Options are applied after the document
// namespace, so WithNamespace overrides it.
func Parse(data []byte, opts ...Option) (*Model, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse model YAML: %w", err)
	}

	applyDefaults(&doc)

	return Build(&doc, opts...)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(doc *Document) {
	doc.Namespace = strings.TrimSuffix(strings.TrimSpace(doc.Namespace), ".")

	for i := range doc.Types {
		td := &doc.Types[i]
		if td.Kind == "" {
			if len(td.Key) > 0 {
				td.Kind = KindEntity.String()
			} else {
				td.Kind = KindComplex.String()
			}
		}
		for j := range td.Properties {
			if td.Properties[j].Type == "" {
				td.Properties[j].Type = "any"
			}
		}
	}
}

// Build validates a document and registers its types in a new model.
func Build(doc *Document, opts ...Option) (*Model, error) {
	m, err := New(append([]Option{WithNamespace(doc.Namespace)}, opts...)...)
	if err != nil {
		return nil, err
	}

	declared := make(map[string]bool, len(doc.Types))
	for _, td := range doc.Types {
		declared[m.Qualify(td.Name)] = true
	}

	for i, td := range doc.Types {
		field := fmt.Sprintf("types[%d]", i)

		kind, ok := ParseKind(td.Kind)
		if !ok {
			return nil, errors.NewValidationError(field+".kind", fmt.Sprintf("unknown kind %q", td.Kind))
		}

		props := make([]StructuralProperty, 0, len(td.Properties))
		for j, pd := range td.Properties {
			declType := pd.Type
			if !isPrimitiveOrFormat(strings.TrimPrefix(declType, "[]")) {
				declType = qualifyDeclared(m, declType)
				if !declared[strings.TrimPrefix(declType, "[]")] {
					return nil, errors.NewValidationError(
						fmt.Sprintf("%s.properties[%d].type", field, j),
						fmt.Sprintf("unknown declared type %q", pd.Type),
					)
				}
			}
			props = append(props, StructuralProperty{Name: pd.Name, Type: declType})
		}

		var typeOpts []TypeOption
		if len(td.Key) > 0 {
			typeOpts = append(typeOpts, WithKey(td.Key...))
		}
		if len(td.KeyTemplate) > 0 {
			typeOpts = append(typeOpts, WithKeyTemplate(td.KeyTemplate))
		}

		st, err := NewSchemaType(m.Qualify(td.Name), kind, props, typeOpts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		if err := m.Register(st); err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
	}

	return m, nil
}

// Document renders the model back into its YAML document form.
func (m *Model) Document() *Document {
	doc := &Document{Namespace: m.namespace}
	for _, t := range m.Types() {
		td := TypeDocument{
			Name:        t.Name(),
			Kind:        t.Kind().String(),
			Key:         t.Key(),
			KeyTemplate: t.KeyTemplate(),
		}
		if m.namespace != "" {
			td.Name = strings.TrimPrefix(t.Name(), m.namespace+".")
		}
		for _, p := range t.Properties() {
			td.Properties = append(td.Properties, PropertyDocument{Name: p.Name, Type: p.Type})
		}
		doc.Types = append(doc.Types, td)
	}
	return doc
}

// Marshal serializes a model to YAML.
func Marshal(m *Model) ([]byte, error) {
	return yaml.Marshal(m.Document())
}

func isPrimitiveOrFormat(name string) bool {
	return primitiveTypes[name] || strfmt.Default.ContainsName(name)
}

func qualifyDeclared(m *Model, declType string) string {
	if elem, ok := strings.CutPrefix(declType, "[]"); ok {
		return "[]" + m.Qualify(elem)
	}
	return m.Qualify(declType)
}
