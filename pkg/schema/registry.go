package schema

import (
	"reflect"
	"sync"

	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

// Registry 保存 Go 类型到 schema 的映射，通常在启动阶段注册完毕后只读。
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]*Type
	names map[string]*Type
}

// NewRegistry 创建一个空的 Registry。
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[reflect.Type]*Type),
		names: make(map[string]*Type),
	}
}

var defaultRegistry = NewRegistry()

// Default 返回进程级默认 Registry。
func Default() *Registry {
	return defaultRegistry
}

// Register 向默认 Registry 注册 types。
func Register(types ...*Type) error {
	return defaultRegistry.Register(types...)
}

// Register 注册 types，schema 名称和 Go 类型都不能重复。
// 任一类型注册失败时，本次调用不注册任何类型。
func (r *Registry) Register(types ...*Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pendingTypes := make(map[reflect.Type]struct{}, len(types))
	pendingNames := make(map[string]struct{}, len(types))
	for _, t := range types {
		if t == nil {
			return merr.WrapErrSchemaInvalid("", "nil type")
		}
		if existing, ok := r.names[t.name]; ok {
			return merr.WrapErrSchemaAlreadyRegistered(t.name, existing.rtype.String())
		}
		if existing, ok := r.types[t.rtype]; ok {
			return merr.WrapErrSchemaAlreadyRegistered(existing.name, t.rtype.String())
		}
		if _, ok := pendingNames[t.name]; ok {
			return merr.WrapErrSchemaAlreadyRegistered(t.name, t.rtype.String())
		}
		if _, ok := pendingTypes[t.rtype]; ok {
			return merr.WrapErrSchemaAlreadyRegistered(t.name, t.rtype.String())
		}
		pendingNames[t.name] = struct{}{}
		pendingTypes[t.rtype] = struct{}{}
	}

	for _, t := range types {
		r.types[t.rtype] = t
		r.names[t.name] = t
	}
	return nil
}

// MustRegister 同 Register，出错时 panic。
func (r *Registry) MustRegister(types ...*Type) {
	if err := r.Register(types...); err != nil {
		panic(err)
	}
}

// Lookup 查找 rt 对应的 schema。
// 找不到时在 T 与 *T 之间回退一次，返回的 Type.GoType() 可能与 rt 不同。
func (r *Registry) Lookup(rt reflect.Type) (*Type, bool) {
	if rt == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.types[rt]; ok {
		return t, true
	}
	if rt.Kind() == reflect.Pointer {
		t, ok := r.types[rt.Elem()]
		return t, ok
	}
	t, ok := r.types[reflect.PointerTo(rt)]
	return t, ok
}

// LookupName 按 schema 名称查找。
func (r *Registry) LookupName(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.names[name]
	return t, ok
}

// Len 返回已注册的类型数量。
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}
