package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// deepCopy returns a structurally independent copy of v by round-tripping it
// through JSON into a fresh value of the same dynamic type. Snapshots must
// not alias live entries: rollback has to be correct even if further
// optimistic writes touch the entry while a mutation is in flight.
func deepCopy(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cache: snapshot marshal: %w", err)
	}
	fresh := reflect.New(reflect.TypeOf(v))
	if err := json.Unmarshal(b, fresh.Interface()); err != nil {
		return nil, fmt.Errorf("cache: snapshot unmarshal: %w", err)
	}
	return fresh.Elem().Interface(), nil
}
