package serializer

import (
	"github.com/samber/lo"

	"github.com/lk2023060901/openapi-serializer-go/pkg/schema"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/typeutil"
)

// bind 用 ctx 满足 params 声明的全部参数。
// 只要有一个参数在 ctx 中缺失就返回 false；值为 nil 的键视为存在。
// 返回的 Args 只包含 params 中声明的参数。
func bind(params []string, ctx Context) (schema.Args, bool) {
	if len(params) == 0 {
		return schema.NoArgs, true
	}

	required := typeutil.NewSet(params...)
	matched := required.Intersection(typeutil.NewSet(lo.Keys(ctx)...))
	if !matched.Equal(required) {
		return nil, false
	}

	args := make(map[string]any, matched.Len())
	matched.Range(func(name string) bool {
		args[name] = ctx[name]
		return true
	})
	return schema.NewArgs(args), true
}
