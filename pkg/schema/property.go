package schema

// Kind 区分元数据条目挂载在字段上还是方法上。
type Kind uint8

const (
	KindProperty Kind = iota + 1
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Property 是挂载在成员上的一条不可变元数据。
// Key 为空表示输出键由成员名推导。
type Property struct {
	Key  string
	Kind Kind
}

// Auto 表示输出键由成员名推导的元数据条目。
var Auto = Property{}

// Key 返回一条声明了输出键的元数据条目，Kind 由所属成员决定。
func Key(key string) Property {
	return Property{Key: key}
}

// Derived 判断输出键是否需要由成员名推导。
func (p Property) Derived() bool {
	return p.Key == ""
}
