package rpc

import (
	"encoding/json"
)

// CodecName is the content subtype used by the fetcher service.
const CodecName = "json"

// JSONCodec encodes the fetcher messages as JSON over gRPC.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string {
	return CodecName
}
