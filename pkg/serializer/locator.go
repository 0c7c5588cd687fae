package serializer

import (
	"github.com/samber/lo"

	"github.com/lk2023060901/openapi-serializer-go/pkg/schema"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/typeutil"
)

// candidate 是一个带有元数据的可序列化成员。
type candidate struct {
	member schema.Member
	// via 为声明该方法的接口名，字段和类型自身的方法为空。
	via string
}

// candidatesOf 返回 t 的候选成员，结果按类型缓存。
func (s *Serializer) candidatesOf(t *schema.Type) []candidate {
	if cached, ok := s.candidates.Load(t); ok {
		return cached.([]candidate)
	}
	cached, _ := s.candidates.LoadOrStore(t, locate(t))
	return cached.([]candidate)
}

// locate 按发现顺序列出 t 的候选成员：
// 字段，接口声明的方法，类型自身（含继承）的方法。
// 多个接口声明同名方法时不去重，输出时后发现的覆盖先发现的。
//
// 接口按深度优先访问，被嵌入的接口先于嵌入它的接口列出，每个接口只列出一次。
// 因此 Namer 嵌入 Greeter 时键序为 greeting、name；值与逐个接口各自展开
// 全部方法的顺序一致，只有键的先后不同。
func locate(t *schema.Type) []candidate {
	var out []candidate
	for _, f := range t.Fields() {
		out = append(out, candidate{member: f})
	}

	seen := typeutil.NewSet[string]()
	var visit func(iface *schema.Interface)
	visit = func(iface *schema.Interface) {
		if seen.Contain(iface.Name()) {
			return
		}
		seen.Insert(iface.Name())
		for _, embedded := range iface.Embeds() {
			visit(embedded)
		}
		for _, m := range iface.Methods() {
			out = append(out, candidate{member: m, via: iface.Name()})
		}
	}
	for _, iface := range t.Interfaces() {
		visit(iface)
	}

	for _, m := range t.Methods() {
		out = append(out, candidate{member: m})
	}

	return lo.Filter(out, func(c candidate, _ int) bool {
		return len(c.member.Properties) > 0
	})
}
