package render

import (
	"bytes"

	j "github.com/goccy/go-json"
)

// Obj is an insertion-ordered JSON object node. Schema documents are
// key-order sensitive in presentation ($schema first, then definitions, then
// the root keys), which a Go map cannot express; Obj keeps the order the
// renderer chose.
type Obj struct {
	keys []string
	vals map[string]any
}

// NewObj returns an empty ordered object.
func NewObj() *Obj {
	return &Obj{vals: map[string]any{}}
}

// Set appends key with value, or replaces the value in place when key is
// already present.
func (o *Obj) Set(key string, v any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value stored under key.
func (o *Obj) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Len reports the number of keys.
func (o *Obj) Len() int { return len(o.keys) }

// MarshalJSON emits the object compactly in insertion order. Indentation is
// applied by the caller's MarshalIndent pass, which re-indents embedded
// marshaler output.
func (o *Obj) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := j.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := j.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
