package design

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/domain"
)

// dictionary is an insertion-ordered key/value store backing a site's DictionaryService.
type dictionary struct {
	keys   []any
	values map[any]any
}

func (d *dictionary) get(key any) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

func (d *dictionary) set(key, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *dictionary) remove(key any) {
	if d == nil {
		return
	}
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i:i], d.keys[i+1:]...)
			return
		}
	}
}

// keyOf returns the first key, in insertion order, whose value equals value.
func (d *dictionary) keyOf(value any) any {
	if d == nil {
		return nil
	}
	for _, k := range d.keys {
		if sameValue(d.values[k], value) {
			return k
		}
	}
	return nil
}

func (d *dictionary) len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// checkKey rejects keys that cannot be used as map keys.
func checkKey(key any) error {
	if key == nil {
		return domain.NilArgument("key")
	}
	if !reflect.ValueOf(key).Comparable() {
		return &domain.ArgumentError{Param: "key", Reason: "must be comparable"}
	}
	return nil
}

// sameValue compares comparable values with ==. Maps, slices and funcs match
// only the same instance; other non-comparable values, such as structs
// holding slices, match by content.
func sameValue(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Comparable() {
		return a == b
	}
	switch va.Kind() {
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return reflect.DeepEqual(a, b)
}
