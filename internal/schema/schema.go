package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Kind — тип источника, под чью форму проверяется ответ.
type Kind string

const (
	KindNews      Kind = "news"
	KindMovers    Kind = "movers"
	KindIndicator Kind = "indicator"
)

// ErrInvalid возвращается (обёрнутой) при несовпадении ответа с ожидаемой
// формой. Это значение, а не паника: потребителю не нужен recover.
var ErrInvalid = errors.New("schema validation failed")

// Validator проверяет сырые ответы источников по встроенным JSON-схемам.
// Чистая проверка без побочных эффектов.
type Validator struct {
	schemas map[Kind]*jsonschema.Schema
}

// NewValidator компилирует встроенные схемы всех трёх видов источников.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	kinds := []Kind{KindNews, KindMovers, KindIndicator}

	for _, kind := range kinds {
		raw, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.json", kind))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", kind, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", kind, err)
		}
		if err := compiler.AddResource(string(kind)+".json", doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", kind, err)
		}
	}

	schemas := make(map[Kind]*jsonschema.Schema, len(kinds))
	for _, kind := range kinds {
		sch, err := compiler.Compile(string(kind) + ".json")
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", kind, err)
		}
		schemas[kind] = sch
	}
	return &Validator{schemas: schemas}, nil
}

// Validate проверяет payload (результат json-декодирования) по схеме вида
// kind. Несовпадение формы — ошибка-значение с ErrInvalid внутри.
func (v *Validator) Validate(kind Kind, payload any) error {
	sch, ok := v.schemas[kind]
	if !ok {
		return fmt.Errorf("no schema for source kind %q", kind)
	}
	if err := sch.Validate(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
