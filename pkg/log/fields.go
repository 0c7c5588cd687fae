package log

import (
	"go.uber.org/zap"
)

const (
	FieldNameModule    = "module"
	FieldNameComponent = "component"
	FieldNameSchema    = "schema"
	FieldNameMember    = "member"
)

// FieldModule 返回一个包含模块名的 zap 字段。
func FieldModule(module string) zap.Field {
	return zap.String(FieldNameModule, module)
}

// FieldComponent 返回一个包含组件名的 zap 字段。
func FieldComponent(component string) zap.Field {
	return zap.String(FieldNameComponent, component)
}

// FieldSchema 返回一个包含 schema 名称的 zap 字段。
func FieldSchema(schema string) zap.Field {
	return zap.String(FieldNameSchema, schema)
}

// FieldMember 返回一个包含成员名称的 zap 字段。
func FieldMember(member string) zap.Field {
	return zap.String(FieldNameMember, member)
}
