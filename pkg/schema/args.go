package schema

import (
	"reflect"

	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

// Args 是 getter 调用时可见的上下文参数视图，只包含 getter 声明过的参数。
type Args interface {
	// Get 返回参数 name 的值，第二个返回值表示参数是否存在。
	Get(name string) (any, bool)
	// Len 返回参数个数。
	Len() int
}

var (
	_ Args = mapArgs(nil)

	// NoArgs 是不带任何参数的 Args。
	NoArgs Args = mapArgs(nil)
)

type mapArgs map[string]any

// NewArgs 基于 m 构造 Args，调用方之后不应再修改 m。
func NewArgs(m map[string]any) Args {
	return mapArgs(m)
}

func (a mapArgs) Get(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

func (a mapArgs) Len() int {
	return len(a)
}

// Arg 从 args 中取出参数 name 并收窄为类型 V。
// 参数缺失返回 ErrParameterMissing，类型不符返回 ErrParameterInvalid。
// 值为 nil 时，可为 nil 的 V（接口、指针、map、切片、函数、通道）返回零值。
func Arg[V any](args Args, name string) (V, error) {
	var zero V
	if args == nil {
		return zero, merr.WrapErrParameterMissing(name)
	}
	raw, ok := args.Get(name)
	if !ok {
		return zero, merr.WrapErrParameterMissing(name)
	}
	if raw == nil {
		if nillable(reflect.TypeFor[V]()) {
			return zero, nil
		}
		return zero, merr.WrapErrParameterInvalid(reflect.TypeFor[V]().String(), "nil", "argument "+name)
	}
	v, ok := raw.(V)
	if !ok {
		return zero, merr.WrapErrParameterInvalid(reflect.TypeFor[V]().String(), reflect.TypeOf(raw).String(), "argument "+name)
	}
	return v, nil
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
