package serializer

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/spf13/cast"

	"github.com/lk2023060901/openapi-serializer-go/pkg/schema"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

var timeType = reflect.TypeFor[time.Time]()

// serialize 是递归入口，depth 为当前所在层级，顶层为 0。
// 只有对象、序列与映射占用层级，标量叶子不受 MaxDepth 限制。
func (s *Serializer) serialize(resource any, ctx Context, depth int) (any, error) {
	switch v := resource.(type) {
	case nil:
		return nil, nil
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return v, nil
	case time.Time:
		return formatTime(v), nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return formatTime(*v), nil
	case *Object:
		if v == nil {
			return nil, nil
		}
		return s.serializeObject(v, ctx, depth)
	case []any:
		return s.serializeSequence(reflect.ValueOf(v), ctx, depth)
	}

	rv := reflect.ValueOf(resource)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}
	if t, ok := s.registry.Lookup(rv.Type()); ok {
		if adapted, ok := adapt(t, rv); ok {
			return s.serializeType(t, adapted, ctx, depth)
		}
	}

	// 以 time.Time 为底层类型或匿名嵌入 time.Time 的值与 time.Time 同样格式化。
	if ts, ok := asTime(rv); ok {
		return formatTime(ts), nil
	}

	// 未注册且能自行文本化的值（如 UUID、IP）输出为字符串。
	if m, ok := resource.(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return nil, err
		}
		return string(text), nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return s.serialize(rv.Elem().Interface(), ctx, depth)
	case reflect.Slice, reflect.Array:
		return s.serializeSequence(rv, ctx, depth)
	case reflect.Map:
		return s.serializeMap(rv, ctx, depth)
	case reflect.Struct:
		// 未注册的结构体没有任何可序列化成员。
		return NewObject(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		return rv.String(), nil
	default:
		return nil, merr.WrapErrUnsupportedValue(resource, rv.Kind().String())
	}
}

// enter 在进入一层容器前检查深度限制，顶层容器的深度为 0。
func (s *Serializer) enter(depth int) error {
	if s.maxDepth > 0 && depth > s.maxDepth {
		return merr.WrapErrMaxDepthExceeded(depth, s.maxDepth)
	}
	return nil
}

// serializeType 按 schema 序列化一个已注册的对象。
func (s *Serializer) serializeType(t *schema.Type, resource any, ctx Context, depth int) (any, error) {
	if err := s.enter(depth); err != nil {
		return nil, err
	}
	out := NewObject()
	for _, c := range s.candidatesOf(t) {
		key, value, present, err := s.resolve(t, resource, c, ctx, depth)
		if err != nil {
			return nil, err
		}
		if present {
			// 已存在的键保持原位置，值被后发现的成员覆盖。
			out.Set(key, value)
		}
	}
	return out, nil
}

func (s *Serializer) serializeObject(obj *Object, ctx Context, depth int) (any, error) {
	if err := s.enter(depth); err != nil {
		return nil, err
	}
	out := NewObject()
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		value, err := s.serialize(pair.Value, ctx, depth+1)
		if err != nil {
			return nil, err
		}
		out.Set(pair.Key, value)
	}
	return out, nil
}

func (s *Serializer) serializeSequence(rv reflect.Value, ctx Context, depth int) (any, error) {
	if err := s.enter(depth); err != nil {
		return nil, err
	}
	out := make([]any, rv.Len())
	for i := range out {
		value, err := s.serialize(rv.Index(i).Interface(), ctx, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = value
	}
	return out, nil
}

// serializeMap 将 map 转为有序映射，键转为字符串后升序排列。
// 不同的键转为同一字符串时返回 ErrUnsupportedValue。
func (s *Serializer) serializeMap(rv reflect.Value, ctx Context, depth int) (any, error) {
	if err := s.enter(depth); err != nil {
		return nil, err
	}
	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := cast.ToStringE(mapKey(iter.Key()))
		if err != nil {
			return nil, merr.WrapErrUnsupportedValue(iter.Key().Interface(), "map key")
		}
		entries = append(entries, entry{key: key, value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})
	for i := 1; i < len(entries); i++ {
		if entries[i].key == entries[i-1].key {
			return nil, merr.WrapErrUnsupportedValue(rv.Interface(), fmt.Sprintf("duplicate map key %q", entries[i].key))
		}
	}

	out := NewObject()
	for _, e := range entries {
		value, err := s.serialize(e.value.Interface(), ctx, depth+1)
		if err != nil {
			return nil, err
		}
		out.Set(e.key, value)
	}
	return out, nil
}

// mapKey 将命名类型的键还原为基础类型，便于 cast 识别。
func mapKey(key reflect.Value) any {
	if key.Kind() == reflect.Interface {
		if key.IsNil() {
			return nil
		}
		key = key.Elem()
	}
	if s, ok := key.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	switch key.Kind() {
	case reflect.String:
		return key.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return key.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return key.Uint()
	case reflect.Float32, reflect.Float64:
		return key.Float()
	case reflect.Bool:
		return key.Bool()
	default:
		return key.Interface()
	}
}

// asTime 识别可转换为 time.Time 的命名类型，以及匿名嵌入 time.Time 的结构体。
func asTime(rv reflect.Value) (time.Time, bool) {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return time.Time{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return time.Time{}, false
	}
	if rv.Type().ConvertibleTo(timeType) {
		return rv.Convert(timeType).Interface().(time.Time), true
	}
	for i := 0; i < rv.NumField(); i++ {
		if f := rv.Type().Field(i); f.Anonymous && f.Type == timeType {
			return rv.Field(i).Interface().(time.Time), true
		}
	}
	return time.Time{}, false
}

// adapt 将 rv 转换为 t 声明的 Go 类型，兼容 T 与 *T 的互相查找。
func adapt(t *schema.Type, rv reflect.Value) (any, bool) {
	want := t.GoType()
	switch {
	case rv.Type() == want:
		return rv.Interface(), true
	case rv.Kind() == reflect.Pointer && rv.Type().Elem() == want:
		return rv.Elem().Interface(), true
	case want.Kind() == reflect.Pointer && want.Elem() == rv.Type():
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		return ptr.Interface(), true
	default:
		return nil, false
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
