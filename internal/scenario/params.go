package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/talgya/market-sim/internal/firms"
)

//go:embed firm.schema.json
var firmSchemaJSON []byte

const firmSchemaURL = "firm.schema.json"

var (
	schemaOnce sync.Once
	firmSchema *jsonschema.Schema
	schemaErr  error
)

func compiledFirmSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(firmSchemaURL, bytes.NewReader(firmSchemaJSON)); err != nil {
			schemaErr = err
			return
		}
		firmSchema, schemaErr = c.Compile(firmSchemaURL)
	})
	return firmSchema, schemaErr
}

// Merge overlays override onto base. Nested maps merge key by key; any other
// value in override replaces the base value. Neither input is modified.
func Merge(base, override map[string]any) map[string]any {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]any, len(override))
	}
	for k, v := range override {
		ov, vIsMap := v.(map[string]any)
		bv, bIsMap := out[k].(map[string]any)
		if vIsMap && bIsMap {
			out[k] = Merge(bv, ov)
			continue
		}
		out[k] = v
	}
	return out
}

// ResolveParams merges the defaults into spec's overrides, checks the result
// for the required keys and decodes it.
func (d *Document) ResolveParams(spec FirmSpec) (firms.Params, error) {
	merged := Merge(d.FirmDefaults, spec.Params)

	// Normalize YAML scalars to JSON types before schema validation.
	raw, err := json.Marshal(merged)
	if err != nil {
		return firms.Params{}, fmt.Errorf("%w: %v", firms.ErrInvalidParams, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return firms.Params{}, fmt.Errorf("%w: %v", firms.ErrInvalidParams, err)
	}

	schema, err := compiledFirmSchema()
	if err != nil {
		return firms.Params{}, fmt.Errorf("compile firm schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return firms.Params{}, fmt.Errorf("%w: %v", firms.ErrInvalidParams, err)
	}

	var p firms.Params
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return firms.Params{}, err
	}
	if err := dec.Decode(doc); err != nil {
		return firms.Params{}, fmt.Errorf("%w: %v", firms.ErrInvalidParams, err)
	}
	return p, nil
}
