package answer

import (
	"fmt"
	"os"
	"strings"

	"github.com/jywlabs/brio/internal/schema"
	"gopkg.in/yaml.v3"
)

// Decode builds a store from a flat id → value document. Companion text sits
// next to its question under the external name (`favoriteCharacterCustom`
// beside `favoriteCharacter`). Values are coerced to the shape of their
// question.
func Decode(s *schema.Schema, raw map[string]interface{}) (*Store, error) {
	store := NewStore()
	for key, v := range raw {
		if q, ok := s.Question(key); ok {
			val, err := coerce(q, v)
			if err != nil {
				return nil, err
			}
			store.Put(q.ID, val)
			continue
		}
		if id, ok := strings.CutSuffix(key, schema.CustomSuffix); ok {
			if q, ok := s.Question(id); ok && q.Kind.IsChoice() {
				text, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("%s: custom text must be a string", key)
				}
				store.PutCustom(id, text)
				continue
			}
		}
		return nil, fmt.Errorf("%s: no such question in schema %q", key, s.Name)
	}
	return store, nil
}

func coerce(q schema.Question, v interface{}) (Value, error) {
	switch ShapeFor(q.Kind) {
	case ShapeNumber:
		n, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("%s: expected a number, got %T", q.ID, v)
		}
		return Number(n), nil
	case ShapeSet:
		items, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: expected a list, got %T", q.ID, v)
		}
		var set Set
		for _, item := range items {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: list members must be strings", q.ID)
			}
			set = set.With(str)
		}
		return set, nil
	default:
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected a string, got %T", q.ID, v)
		}
		return Text(str), nil
	}
}

// LoadFile reads a YAML answers document for the given schema.
func LoadFile(s *schema.Schema, path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	return Decode(s, raw)
}
