package bq

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/bigquery/storage/managedwriter/adapt"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

type rowDescriptor struct {
	message protoreflect.MessageDescriptor
	proto   *descriptorpb.DescriptorProto
}

func newRowDescriptor(schema bigquery.Schema) (*rowDescriptor, error) {
	storageSchema, err := adapt.BQSchemaToStorageTableSchema(schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to convert schema")
	}

	descriptor, err := adapt.StorageSchemaToProto2Descriptor(storageSchema, "root")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to convert schema to descriptor")
	}
	md, ok := descriptor.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, goerr.New("adapted descriptor is not a message descriptor")
	}
	dp, err := adapt.NormalizeDescriptor(md)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to normalize descriptor")
	}

	return &rowDescriptor{message: md, proto: dp}, nil
}

// encodeRow converts data into a serialized proto message matching schema.
func encodeRow(schema bigquery.Schema, data any) (*rowDescriptor, []byte, error) {
	descriptor, err := newRowDescriptor(schema)
	if err != nil {
		return nil, nil, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to marshal row")
	}
	sanitized, err := sanitizeProtoJSON(raw)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to sanitize row", goerr.V("raw", string(raw)))
	}

	message := dynamicpb.NewMessage(descriptor.message)
	if err := protojson.Unmarshal(sanitized, message); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert row to proto message", goerr.V("raw", string(raw)))
	}

	b, err := proto.Marshal(message)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to marshal proto message")
	}

	return descriptor, b, nil
}

// sanitizeProtoJSON renames object keys that are not valid proto field names, such as file paths used as map keys.
func sanitizeProtoJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}

	return json.Marshal(sanitizeValue(data))
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(val))
		for key, value := range val {
			res[protoFieldJSONName(key)] = sanitizeValue(value)
		}
		return res
	case []any:
		for i := range val {
			val[i] = sanitizeValue(val[i])
		}
		return val
	default:
		return v
	}
}

func protoFieldJSONName(name string) string {
	if protoreflect.Name(name).IsValid() {
		return name
	}
	encoded := base64.RawStdEncoding.EncodeToString([]byte(name))
	encoded = strings.NewReplacer("+", "_", "/", "_").Replace(encoded)
	return "col_" + encoded
}
