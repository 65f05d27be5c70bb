package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// KeySerializer builds a cache key from a namespace and the identifying args.
// Keys are shared between processes through Redis, so they must be stable
// across restarts: no pointer addresses, no map iteration order.
type KeySerializer interface {
	SerializeKey(namespace string, args ...any) string
}

type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates the serializer used by MemberCache.
// SerializeKey("member", int64(1)) yields "member::1".
func NewDefaultKeySerializer() KeySerializer {
	return defaultKeySerializer{}
}

func (s defaultKeySerializer) SerializeKey(namespace string, args ...any) string {
	if len(args) == 0 {
		return namespace
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, namespace)
	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}
	return strings.Join(parts, KeySeparator)
}

func (s defaultKeySerializer) serializeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%v", v)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "nil"
		}
		elems := make([]string, rv.Len())
		for i := range elems {
			elems[i] = s.serializeValue(rv.Index(i).Interface())
		}
		return "[" + strings.Join(elems, ",") + "]"
	}

	// encoding/json sorts map keys, which keeps composite values stable
	data, err := json.Marshal(v)
	if err != nil {
		return "invalid:" + rv.Type().String()
	}
	return string(data)
}
