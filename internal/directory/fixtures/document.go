// Package fixtures loads the static dataset the directory serves. The dataset
// is described in YAML, validated, and turned into domain entities with every
// secret sealed before the plaintext is dropped.
package fixtures

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	validation "github.com/jellydator/validation"
	"gopkg.in/yaml.v3"

	customValidation "github.com/allisson/graphql-secrets/internal/validation"
)

//go:embed default.yaml
var defaultDocument []byte

// Document is the YAML form of the dataset.
type Document struct {
	Clients []ClientEntry `yaml:"clients"`
	Secrets []SecretEntry `yaml:"secrets"`
	Groups  []GroupEntry  `yaml:"groups"`
}

// ClientEntry describes one client.
type ClientEntry struct {
	Name string `yaml:"name"`
}

// SecretEntry describes one secret. Content is plaintext and only lives until
// the dataset is built.
type SecretEntry struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

// GroupEntry describes one group and the names it references.
type GroupEntry struct {
	Name    string   `yaml:"name"`
	Clients []string `yaml:"clients"`
	Secrets []string `yaml:"secrets"`
}

// Parse decodes a YAML document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, customValidation.WrapValidationError(fmt.Errorf("failed to parse fixtures: %w", err))
	}

	return &doc, nil
}

// ReadFile parses the document at path, or the embedded default document
// when path is empty.
func ReadFile(path string) (*Document, error) {
	if path == "" {
		return Parse(defaultDocument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}
	return Parse(data)
}

// Validate checks that every entity is named and that names are unique within
// each collection. Content may be empty.
func (d *Document) Validate() error {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Clients),
		validation.Field(&d.Secrets),
		validation.Field(&d.Groups),
	)
	if err != nil {
		return customValidation.WrapValidationError(err)
	}

	err = validation.Errors{
		"clients": customValidation.UniqueStrings.Validate(clientNames(d.Clients)),
		"secrets": customValidation.UniqueStrings.Validate(secretNames(d.Secrets)),
		"groups":  customValidation.UniqueStrings.Validate(groupNames(d.Groups)),
	}.Filter()
	return customValidation.WrapValidationError(err)
}

// Validate implements validation.Validatable.
func (e ClientEntry) Validate() error {
	return validation.ValidateStruct(&e, nameField(&e.Name))
}

// Validate implements validation.Validatable.
func (e SecretEntry) Validate() error {
	return validation.ValidateStruct(&e, nameField(&e.Name))
}

// Validate implements validation.Validatable.
func (e GroupEntry) Validate() error {
	return validation.ValidateStruct(&e,
		nameField(&e.Name),
		validation.Field(&e.Clients, validation.Each(referenceRule)),
		validation.Field(&e.Secrets, validation.Each(referenceRule)),
	)
}

// Names are matched byte for byte, so surrounding or inner whitespace is part
// of the name. Only the empty string is rejected.
func nameField(name *string) *validation.FieldRules {
	return validation.Field(name,
		validation.Required.Error("name is required"),
		validation.Length(1, 255),
	)
}

var referenceRule = validation.Required.Error("reference must not be empty")

func clientNames(entries []ClientEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func secretNames(entries []SecretEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func groupNames(entries []GroupEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
