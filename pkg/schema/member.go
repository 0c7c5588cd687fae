package schema

type (
	fieldFunc  func(resource any) (any, bool)
	methodFunc func(resource any, args Args) (any, bool, error)
)

// Member 是一个可参与序列化的成员：字段读取器或 getter，及其上挂载的元数据。
// 访问器是类型擦除的，资源的动态类型与声明类型不符时返回 ok=false。
type Member struct {
	// Name 为成员名，字段为字段名，方法为方法名。
	Name string
	Kind Kind
	// Properties 为按声明顺序排列的元数据条目，为空时该成员不参与序列化。
	Properties []Property
	// Params 为 getter 声明的上下文参数名。
	Params []string
	// Owner 为声明该成员的类型或接口名。
	Owner string

	field  fieldFunc
	method methodFunc
}

// Read 读取字段值。
func (m *Member) Read(resource any) (any, bool) {
	if m.Kind != KindProperty || m.field == nil {
		return nil, false
	}
	return m.field(resource)
}

// Invoke 以 args 调用 getter，getter 返回的错误原样透传。
func (m *Member) Invoke(resource any, args Args) (any, bool, error) {
	if m.Kind != KindMethod || m.method == nil {
		return nil, false, nil
	}
	return m.method(resource, args)
}

// KeyFor 返回元数据条目 p 在该成员上的输出键。
// 字段使用成员名，方法使用 DeriveKey 推导的名称。
func (m *Member) KeyFor(p Property) string {
	if !p.Derived() {
		return p.Key
	}
	if m.Kind == KindMethod {
		return DeriveKey(m.Name)
	}
	return m.Name
}

// lift 将声明在 P 上的成员提升为 T 上的成员，upcast 负责 T -> P 的转换。
func lift[T, P any](m Member, upcast func(T) P) Member {
	lifted := m
	switch m.Kind {
	case KindProperty:
		read := m.field
		lifted.field = func(resource any) (any, bool) {
			t, ok := resource.(T)
			if !ok {
				return nil, false
			}
			return read(upcast(t))
		}
	case KindMethod:
		call := m.method
		lifted.method = func(resource any, args Args) (any, bool, error) {
			t, ok := resource.(T)
			if !ok {
				return nil, false, nil
			}
			return call(upcast(t), args)
		}
	}
	return lifted
}

func validateMember(m *Member) []string {
	var problems []string
	if m.Name == "" {
		problems = append(problems, "member name is empty")
	}
	for _, p := range m.Properties {
		if p.Kind != m.Kind {
			problems = append(problems, "member "+m.Name+" carries a "+p.Kind.String()+" entry")
		}
	}
	seen := make(map[string]struct{}, len(m.Params))
	for _, param := range m.Params {
		if param == "" {
			problems = append(problems, "member "+m.Name+" declares an empty parameter name")
		}
		if _, ok := seen[param]; ok {
			problems = append(problems, "member "+m.Name+" declares parameter "+param+" twice")
		}
		seen[param] = struct{}{}
	}
	if m.Kind == KindProperty && m.field == nil || m.Kind == KindMethod && m.method == nil {
		problems = append(problems, "member "+m.Name+" has no accessor")
	}
	return problems
}

// stamp 为未指定 Kind 的元数据条目补上成员的 Kind。
func stamp(kind Kind, props []Property) []Property {
	out := make([]Property, len(props))
	for i, p := range props {
		if p.Kind == 0 {
			p.Kind = kind
		}
		out[i] = p
	}
	return out
}
