package encoding

import (
	stdencoding "encoding"
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"
)

// Variant is one candidate shape of an Untagged value.
type Variant struct {
	// Human-readable name of the variant, used in decode errors.
	Name string
	// Pointer the variant decodes into.
	Receiver interface{}
}

/*
Untagged is implemented by values whose encoded form carries no discriminant, so the
active variant has to be discovered while decoding.

Variants must return fresh receivers on every call, ordered from the variant that
should win a tie (the newest schema) to the one that should be attempted last.
*/
type Untagged interface {
	Variants() []Variant
	// Stores the receiver of the variant that decoded successfully.
	SetVariant(variant Variant) error
	// Returns the active variant's value for encoding, or nil.
	Variant() interface{}
}

// DecodeError is returned when no variant of an Untagged receiver matches a JSON body.
type DecodeError struct {
	// One entry per attempted variant, in attempt order.
	Attempts []string
}

func (err *DecodeError) Error() string {
	return "no variant matched: " + strings.Join(err.Attempts, "; ")
}

// JSONExtensionOpts holds options For Json Handle extension to add to the handle on
// engine setup.
type JSONExtensionOpts struct {
	ValueType    reflect.Type
	ExtInterface codec.InterfaceExt
}

// UntaggedExtension returns the json extension that writes valueType, which must
// implement Untagged through its pointer, as its active variant.
func UntaggedExtension(valueType reflect.Type) *JSONExtensionOpts {
	return &JSONExtensionOpts{
		ValueType:    valueType,
		ExtInterface: &jsonExtUntagged{},
	}
}

// Converts untagged values to their active variant.
type jsonExtUntagged struct{}

func (ext *jsonExtUntagged) ConvertExt(value interface{}) interface{} {
	untagged, ok := value.(Untagged)
	if !ok {
		// Passed by value, so take the address of a copy.
		pointer := reflect.New(reflect.TypeOf(value))
		pointer.Elem().Set(reflect.ValueOf(value))
		untagged = pointer.Interface().(Untagged)
	}
	return untagged.Variant()
}

func (ext *jsonExtUntagged) UpdateExt(dest interface{}, value interface{}) {
	panic(xerrors.New(
		"decoding a nested untagged field is not supported -- decode it directly",
	))
}

var (
	textUnmarshalerType = reflect.TypeOf((*stdencoding.TextUnmarshaler)(nil)).Elem()
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	selferType          = reflect.TypeOf((*codec.Selfer)(nil)).Elem()
)

// Scalar types decode themselves from a JSON string, so their insides are not part
// of the field layout.
func decodesItself(valueType reflect.Type) bool {
	pointerType := reflect.PtrTo(valueType)
	return pointerType.Implements(textUnmarshalerType) ||
		pointerType.Implements(jsonUnmarshalerType) ||
		pointerType.Implements(selferType)
}

type fieldInfo struct {
	name      string
	valueType reflect.Type
	optional  bool
}

// Collects the encoded field names of a struct the way the codec library resolves
// them: "codec" tag, then "json" tag, then the Go name, with untagged anonymous
// structs flattened.
func structFields(structType reflect.Type) []fieldInfo {
	fields := make([]fieldInfo, 0, structType.NumField())

	for index := 0; index < structType.NumField(); index++ {
		field := structType.Field(index)

		tag, hasTag := field.Tag.Lookup("codec")
		if !hasTag {
			tag, hasTag = field.Tag.Lookup("json")
		}
		if tag == "-" {
			continue
		}

		tagParts := strings.Split(tag, ",")
		name := tagParts[0]

		if field.Anonymous && name == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				fields = append(fields, structFields(embedded)...)
				continue
			}
		}

		if field.PkgPath != "" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		optional := false
		for _, option := range tagParts[1:] {
			if option == "omitempty" {
				optional = true
			}
		}

		fields = append(fields, fieldInfo{
			name:      name,
			valueType: field.Type,
			optional:  optional,
		})
	}

	return fields
}

// ErrNullValue is returned when a JSON null stands in for an object, list or byte
// string that has no optional marker.
var ErrNullValue = xerrors.New("null value for required field")

// matchFields checks a schemaless decode of a JSON value against the field layout of
// valueType: every required field has to be present and non-null, and no unknown field
// may appear, at every struct level.
func matchFields(valueType reflect.Type, raw interface{}) error {
	if raw == nil {
		// Pointers and scalars are left to the typed decode.
		switch valueType.Kind() {
		case reflect.Struct, reflect.Slice, reflect.Array, reflect.Map:
			return ErrNullValue
		}
		return nil
	}

	for valueType.Kind() == reflect.Ptr {
		valueType = valueType.Elem()
	}
	if decodesItself(valueType) {
		return nil
	}

	switch valueType.Kind() {
	case reflect.Struct:
		object, ok := raw.(map[string]interface{})
		if !ok {
			return xerrors.Errorf("expected object for %v", valueType)
		}

		fields := structFields(valueType)
		known := make(map[string]bool, len(fields))

		for _, field := range fields {
			known[field.name] = true

			value, present := object[field.name]
			if field.optional && (!present || value == nil) {
				continue
			}
			if !present {
				return xerrors.Errorf("missing field '%v'", field.name)
			}

			if err := matchFields(field.valueType, value); err != nil {
				return xerrors.Errorf("%v: %w", field.name, err)
			}
		}

		unknown := make([]string, 0)
		for key := range object {
			if !known[key] {
				unknown = append(unknown, key)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return xerrors.Errorf("unknown field '%v'", unknown[0])
		}

	case reflect.Slice, reflect.Array:
		items, ok := raw.([]interface{})
		if !ok {
			return nil
		}
		for index, item := range items {
			if err := matchFields(valueType.Elem(), item); err != nil {
				return xerrors.Errorf("[%v]: %w", index, err)
			}
		}
	}

	return nil
}
