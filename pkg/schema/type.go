package schema

import (
	"reflect"
	"strings"

	"github.com/samber/lo"

	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

// Type 描述一个可序列化的具体类型。
// 字段和方法列表在 Build 时已解析完继承关系：自身声明在前，
// 随后是父类型中未被同名成员覆盖的声明。
type Type struct {
	name       string
	rtype      reflect.Type
	parent     *Type
	fields     []Member
	methods    []Member
	interfaces []*Interface
}

// Name 返回类型的 schema 名称。
func (t *Type) Name() string {
	return t.name
}

// GoType 返回类型对应的 reflect.Type。
func (t *Type) GoType() reflect.Type {
	return t.rtype
}

// Parent 返回父类型，没有时为 nil。
func (t *Type) Parent() *Type {
	return t.parent
}

// Fields 返回可读字段，自身声明在前，继承字段在后。
func (t *Type) Fields() []Member {
	return t.fields
}

// Methods 返回自身方法，自身声明在前，未被覆盖的继承方法在后。
func (t *Type) Methods() []Member {
	return t.methods
}

// Interfaces 返回实现的接口，继承自父类型的在前，自身声明的在后，同名接口只出现一次。
func (t *Type) Interfaces() []*Interface {
	return t.interfaces
}

// ObjectBuilder 用于构造类型 T 的 schema。
type ObjectBuilder[T any] struct {
	t        *Type
	own      []*Interface
	problems []string
}

// Object 开始构造类型 T 的 schema。
func Object[T any](name string) *ObjectBuilder[T] {
	return &ObjectBuilder[T]{
		t: &Type{
			name:  name,
			rtype: reflect.TypeFor[T](),
		},
	}
}

// Field 声明一个只读字段。未传入元数据时该字段不参与序列化。
func (b *ObjectBuilder[T]) Field(name string, get func(T) any, props ...Property) *ObjectBuilder[T] {
	m := Member{
		Name:       name,
		Kind:       KindProperty,
		Properties: stamp(KindProperty, props),
		Owner:      b.t.name,
	}
	if get != nil {
		m.field = func(resource any) (any, bool) {
			v, ok := resource.(T)
			if !ok {
				return nil, false
			}
			return get(v), true
		}
	}
	b.add(m)
	return b
}

// Method 声明一个需要上下文参数的方法，params 为参数名集合。
func (b *ObjectBuilder[T]) Method(name string, params []string, fn func(T, Args) (any, error), props ...Property) *ObjectBuilder[T] {
	m := Member{
		Name:       name,
		Kind:       KindMethod,
		Properties: stamp(KindMethod, props),
		Params:     params,
		Owner:      b.t.name,
	}
	if fn != nil {
		m.method = func(resource any, args Args) (any, bool, error) {
			v, ok := resource.(T)
			if !ok {
				return nil, false, nil
			}
			out, err := fn(v, args)
			return out, true, err
		}
	}
	b.add(m)
	return b
}

// Getter 声明一个无参 getter，方法名为 GetterName(key)，输出键为 key。
func (b *ObjectBuilder[T]) Getter(key string, fn func(T) any) *ObjectBuilder[T] {
	var call func(T, Args) (any, error)
	if fn != nil {
		call = func(v T, _ Args) (any, error) {
			return fn(v), nil
		}
	}
	return b.Method(GetterName(key), nil, call, Key(key))
}

// Implements 声明 T 实现的接口，T 必须在 Go 类型层面实现这些接口。
func (b *ObjectBuilder[T]) Implements(ifaces ...*Interface) *ObjectBuilder[T] {
	for _, iface := range ifaces {
		if iface == nil {
			b.problems = append(b.problems, "nil interface")
			continue
		}
		b.own = append(b.own, iface)
	}
	return b
}

func (b *ObjectBuilder[T]) add(m Member) {
	b.problems = append(b.problems, validateMember(&m)...)
	var existing []Member
	if m.Kind == KindProperty {
		existing = b.t.fields
	} else {
		existing = b.t.methods
	}
	if lo.ContainsBy(existing, func(e Member) bool { return e.Owner == m.Owner && e.Name == m.Name }) {
		b.problems = append(b.problems, "member "+m.Name+" declared twice")
	}
	if m.Kind == KindProperty {
		b.t.fields = append(b.t.fields, m)
	} else {
		b.t.methods = append(b.t.methods, m)
	}
}

// Extends 声明 T 继承自 parent（类型 P），upcast 负责从 T 取得 P。
// 父类型的字段和方法被提升到 T 上，T 自身的同名成员优先。
//
// 提升后的成员通过 upcast 得到的 P 取值，Go 的嵌入没有虚派发：
// 即使 T 自己定义了同名 Go 方法（如 GetGreeting），也必须在 T 的 schema 上
// 重新声明该成员，否则输出仍是父类型的结果。接口 schema 声明的成员按动态类型派发，不受此限制。
func Extends[T, P any](b *ObjectBuilder[T], parent *Type, upcast func(T) P) *ObjectBuilder[T] {
	switch {
	case parent == nil:
		b.problems = append(b.problems, "nil parent")
		return b
	case upcast == nil:
		b.problems = append(b.problems, "nil upcast from "+parent.name)
		return b
	case parent.rtype != reflect.TypeFor[P]():
		b.problems = append(b.problems, "parent "+parent.name+" describes "+parent.rtype.String()+", not "+reflect.TypeFor[P]().String())
		return b
	case b.t.parent != nil:
		b.problems = append(b.problems, "parent already set to "+b.t.parent.name)
		return b
	}
	b.t.parent = parent
	b.t.fields = append(b.t.fields, lo.Map(parent.fields, func(m Member, _ int) Member {
		return lift(m, upcast)
	})...)
	b.t.methods = append(b.t.methods, lo.Map(parent.methods, func(m Member, _ int) Member {
		return lift(m, upcast)
	})...)
	return b
}

// Build 校验并返回类型 schema。
func (b *ObjectBuilder[T]) Build() (*Type, error) {
	t := b.t
	problems := b.problems
	if t.name == "" {
		problems = append(problems, "type name is empty")
	}
	if t.rtype.Kind() == reflect.Interface {
		problems = append(problems, t.rtype.String()+" is an interface, use NewInterface")
	}

	// 子类型上声明的成员覆盖继承来的同名成员，并保持自身声明在前。
	t.fields = overrideInherited(t.fields, t.name)
	t.methods = overrideInherited(t.methods, t.name)

	var interfaces []*Interface
	if t.parent != nil {
		interfaces = append(interfaces, t.parent.interfaces...)
	}
	interfaces = append(interfaces, b.own...)
	t.interfaces = lo.UniqBy(interfaces, func(i *Interface) string { return i.name })
	for _, iface := range t.interfaces {
		if !t.rtype.Implements(iface.rtype) {
			return nil, merr.WrapErrSchemaNotImplemented(t.rtype.String(), iface.name)
		}
	}

	if len(problems) > 0 {
		return nil, merr.WrapErrSchemaInvalid(t.name, "%s", strings.Join(problems, "; "))
	}
	return t, nil
}

// MustBuild 同 Build，出错时 panic，适合在包初始化阶段使用。
func (b *ObjectBuilder[T]) MustBuild() *Type {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// overrideInherited 把自身声明的成员排在前面，并丢弃被它们覆盖的继承成员。
func overrideInherited(members []Member, owner string) []Member {
	own := lo.Filter(members, func(m Member, _ int) bool { return m.Owner == owner })
	for _, m := range members {
		if m.Owner == owner || lo.ContainsBy(own, func(e Member) bool { return e.Name == m.Name }) {
			continue
		}
		own = append(own, m)
	}
	return own
}
