package schema

import (
	"reflect"
	"strings"

	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

// Interface 描述一个 Go 接口上声明的可序列化方法。
// 实现该接口的类型通过 Implements 继承这些方法，调用时按资源的动态类型分派。
type Interface struct {
	name    string
	rtype   reflect.Type
	methods []Member
	embeds  []*Interface
}

// Name 返回接口的 schema 名称。
func (i *Interface) Name() string {
	return i.name
}

// GoType 返回接口对应的 reflect.Type。
func (i *Interface) GoType() reflect.Type {
	return i.rtype
}

// Methods 返回接口自身声明的方法，不包含嵌入接口的方法。
func (i *Interface) Methods() []Member {
	return i.methods
}

// Embeds 返回按声明顺序排列的嵌入接口。
func (i *Interface) Embeds() []*Interface {
	return i.embeds
}

// InterfaceBuilder 用于构造接口 I 的 schema。
type InterfaceBuilder[I any] struct {
	iface    *Interface
	problems []string
}

// NewInterface 开始构造接口 I 的 schema。
func NewInterface[I any](name string) *InterfaceBuilder[I] {
	return &InterfaceBuilder[I]{
		iface: &Interface{
			name:  name,
			rtype: reflect.TypeFor[I](),
		},
	}
}

// Method 声明一个需要上下文参数的方法。
func (b *InterfaceBuilder[I]) Method(name string, params []string, fn func(I, Args) (any, error), props ...Property) *InterfaceBuilder[I] {
	m := Member{
		Name:       name,
		Kind:       KindMethod,
		Properties: stamp(KindMethod, props),
		Params:     params,
		Owner:      b.iface.name,
	}
	if fn != nil {
		m.method = func(resource any, args Args) (any, bool, error) {
			v, ok := resource.(I)
			if !ok {
				return nil, false, nil
			}
			out, err := fn(v, args)
			return out, true, err
		}
	}
	b.problems = append(b.problems, validateMember(&m)...)
	b.iface.methods = append(b.iface.methods, m)
	return b
}

// Getter 声明一个无参 getter，方法名为 GetterName(key)，输出键为 key。
func (b *InterfaceBuilder[I]) Getter(key string, fn func(I) any) *InterfaceBuilder[I] {
	var call func(I, Args) (any, error)
	if fn != nil {
		call = func(v I, _ Args) (any, error) {
			return fn(v), nil
		}
	}
	return b.Method(GetterName(key), nil, call, Key(key))
}

// Embeds 声明嵌入的接口，嵌入接口的方法排在自身方法之前。
func (b *InterfaceBuilder[I]) Embeds(ifaces ...*Interface) *InterfaceBuilder[I] {
	for _, e := range ifaces {
		if e == nil {
			b.problems = append(b.problems, "nil embedded interface")
			continue
		}
		if !b.iface.rtype.Implements(e.rtype) {
			b.problems = append(b.problems, b.iface.rtype.String()+" does not embed "+e.rtype.String())
			continue
		}
		b.iface.embeds = append(b.iface.embeds, e)
	}
	return b
}

// Build 校验并返回接口 schema。
func (b *InterfaceBuilder[I]) Build() (*Interface, error) {
	problems := b.problems
	if b.iface.name == "" {
		problems = append(problems, "interface name is empty")
	}
	if b.iface.rtype.Kind() != reflect.Interface {
		problems = append(problems, b.iface.rtype.String()+" is not an interface")
	}
	if len(problems) > 0 {
		return nil, merr.WrapErrSchemaInvalid(b.iface.name, "%s", strings.Join(problems, "; "))
	}
	return b.iface, nil
}

// MustBuild 同 Build，出错时 panic，适合在包初始化阶段使用。
func (b *InterfaceBuilder[I]) MustBuild() *Interface {
	iface, err := b.Build()
	if err != nil {
		panic(err)
	}
	return iface
}
