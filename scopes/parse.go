package scopes

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValidationError reports a scope whose measurements were rejected.
// Err is usually an ozzo validation.Errors keyed by json field name.
type ValidationError struct {
	Scope Key
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scope %s: %v", e.Scope, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func decode[T Input](raw []byte) (Input, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

var decoders = map[Key]func([]byte) (Input, error){
	Grondwerk:        decode[Earthworks],
	WaterElectra:     decode[Utilities],
	Bestrating:       decode[Paving],
	Houtwerk:         decode[Woodwork],
	Borders:          decode[PlantingBorder],
	Gras:             decode[Lawn],
	GrasOnderhoud:    decode[LawnMaintenance],
	BordersOnderhoud: decode[BorderMaintenance],
	Heggen:           decode[HedgeMaintenance],
	Bomen:            decode[TreeMaintenance],
	Overig:           decode[OtherMaintenance],
}

// Parse decodes and validates the measurements of one scope.
func Parse(key Key, raw []byte) (Input, error) {
	dec, ok := decoders[key]
	if !ok {
		return nil, &ValidationError{Scope: key, Err: fmt.Errorf("unknown scope %q", key)}
	}
	in, err := dec(raw)
	if err != nil {
		return nil, &ValidationError{Scope: key, Err: fmt.Errorf("decode: %w", err)}
	}
	return Validated(in)
}

// Validated returns in unchanged when its measurements are acceptable.
func Validated(in Input) (Input, error) {
	if err := in.Validate(); err != nil {
		return nil, &ValidationError{Scope: in.Key(), Err: err}
	}
	return in, nil
}

// ParseAll decodes a quote's scope map. Keys without a variant are returned
// in unknown instead of failing the quote; the result is in canonical order.
func ParseAll(raw map[string]json.RawMessage) (inputs []Input, unknown []Key, err error) {
	keys := make([]Key, 0, len(raw))
	for k := range raw {
		keys = append(keys, Key(k))
	}
	Sort(keys)

	for _, k := range keys {
		if _, ok := decoders[k]; !ok {
			unknown = append(unknown, k)
			continue
		}
		in, err := Parse(k, raw[string(k)])
		if err != nil {
			return nil, nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, unknown, nil
}
