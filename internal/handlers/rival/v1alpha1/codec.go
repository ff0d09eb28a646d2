package v1alpha1

import (
	"bytes"
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
)

// MarshalBody converts a JSON-tagged Go value into a Struct body
func MarshalBody(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode body")
	}

	body := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, body); err != nil {
		return nil, errors.Wrap(err, "failed to convert body to struct")
	}
	return body, nil
}

// UnmarshalBody decodes a Struct body into a JSON-tagged Go value. Unknown
// fields are rejected.
func UnmarshalBody(body *structpb.Struct, v any) error {
	if body == nil {
		return errors.InvalidArgument("body is required")
	}

	raw, err := protojson.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to read struct body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed body")
	}
	return nil
}
