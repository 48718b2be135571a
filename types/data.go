package types

import (
	"encoding/json"

	"github.com/juju/errors"
	"github.com/spf13/cast"
	"github.com/storely/automation/utils"
)

type Data map[string]any

func (d *Data) Get(key string) (any, bool) {
	v, exists := (*d)[key]
	return v, exists
}

func (d *Data) GetString(key string) (string, bool) {
	v, exists := d.Get(key)
	return cast.ToString(v), exists
}

func (d *Data) GetInt(key string) (int, bool) {
	v, exists := d.Get(key)
	return cast.ToInt(v), exists
}

func (d *Data) GetBool(key string) (bool, bool) {
	v, exists := d.Get(key)
	return cast.ToBool(v), exists
}

func (d *Data) GetFloat64(key string) (float64, bool) {
	v, exists := d.Get(key)
	return cast.ToFloat64(v), exists
}

func (d *Data) GetStruct(key string, s any) error {
	v, exists := d.Get(key)
	if !exists {
		return errors.NotFound
	}
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Trace(err)
	}
	return json.Unmarshal(b, s)
}

func (d *Data) Set(key string, value any) {
	(*d)[key] = value
}

/**
 * Resolve walks the data by splitting path on `.` and indexing
 * nested maps. An unresolvable path returns (nil, false).
 */
func (d Data) Resolve(path string) (any, bool) {
	return utils.ResolvePath(d, path)
}

// Clone returns a shallow copy. Nested maps stay shared; callers
// that mutate nested values must copy them first.
func (d Data) Clone() Data {
	return Data(utils.CloneMap(map[string]any(d)))
}

// Merge returns a clone of d with every key of other laid on top.
func (d Data) Merge(other Data) Data {
	return Data(utils.MergeMap(map[string]any(d), map[string]any(other)))
}
