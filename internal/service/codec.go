package service

import "encoding/json"

// jsonCodec lets Connect carry plain Go structs as JSON. It replaces the
// protojson codec, which only works with generated protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
