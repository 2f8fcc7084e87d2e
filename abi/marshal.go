package abi

import (
	json "github.com/goccy/go-json"
)

// mergeExtra implements the lossless round-trip pattern shared by every
// wire DTO in this package: unknown fields are preserved in Extra so a host
// running an older build of this library doesn't silently drop fields a
// newer peer sent it, the same concern the codec package's TransformRecord
// addresses for transform records.
func mergeExtra(knownBytes []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return knownBytes, nil
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(knownBytes, &known); err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(known)+len(extra))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range known {
		out[k] = v
	}
	return json.Marshal(out)
}

func splitExtra(data []byte, known map[string]struct{}) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var extra map[string]json.RawMessage
	for k, v := range raw {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = map[string]json.RawMessage{}
		}
		extra[k] = v
	}
	return extra, nil
}

var convertRequestFields = fieldSet("schema", "target", "mode", "options")

func (r ConvertRequest) MarshalJSON() ([]byte, error) {
	type wire ConvertRequest
	b, err := json.Marshal(wire(r))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, r.Extra)
}

func (r *ConvertRequest) UnmarshalJSON(data []byte) error {
	type wire ConvertRequest
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = ConvertRequest(w)
	extra, err := splitExtra(data, convertRequestFields)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

var convertResponseFields = fieldSet("schema", "codec", "diagnostics")

func (r ConvertResponse) MarshalJSON() ([]byte, error) {
	type wire ConvertResponse
	b, err := json.Marshal(wire(r))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, r.Extra)
}

func (r *ConvertResponse) UnmarshalJSON(data []byte) error {
	type wire ConvertResponse
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = ConvertResponse(w)
	extra, err := splitExtra(data, convertResponseFields)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

var rehydrateRequestFields = fieldSet("data", "originalSchema", "codec")

func (r RehydrateRequest) MarshalJSON() ([]byte, error) {
	type wire RehydrateRequest
	b, err := json.Marshal(wire(r))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, r.Extra)
}

func (r *RehydrateRequest) UnmarshalJSON(data []byte) error {
	type wire RehydrateRequest
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = RehydrateRequest(w)
	extra, err := splitExtra(data, rehydrateRequestFields)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

var rehydrateResponseFields = fieldSet("data", "warnings")

func (r RehydrateResponse) MarshalJSON() ([]byte, error) {
	type wire RehydrateResponse
	b, err := json.Marshal(wire(r))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, r.Extra)
}

func (r *RehydrateResponse) UnmarshalJSON(data []byte) error {
	type wire RehydrateResponse
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = RehydrateResponse(w)
	extra, err := splitExtra(data, rehydrateResponseFields)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

func fieldSet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}
