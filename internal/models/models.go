// Package models defines the persisted entities and request payloads.
package models

// All lists every entity managed by the schema migrator
func All() []any {
	return []any{&Category{}, &Product{}, &Order{}, &OrderLine{}}
}
