package encoding

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

// ProtoEncoder 将序列化结果转换为 google.protobuf.Value 后进行二进制编码。
//
// 注意：protobuf Struct 不保留键顺序，有序映射在转换后退化为普通 map。
type ProtoEncoder struct{}

// 编译期断言：确保 ProtoEncoder 实现了 Encoder 接口。
var _ Encoder = (*ProtoEncoder)(nil)

func (ProtoEncoder) Name() string { return "proto" }

func (ProtoEncoder) ContentType() string { return "application/x-protobuf" }

func (e ProtoEncoder) Encode(v any) ([]byte, error) {
	msg, err := ToValue(v)
	if err != nil {
		return nil, merr.WrapErrEncodeFailed(e.Name(), err)
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, merr.WrapErrEncodeFailed(e.Name(), err)
	}
	return data, nil
}

// ToValue 将序列化结果转换为 structpb.Value。
func ToValue(v any) (*structpb.Value, error) {
	return structpb.NewValue(plain(v))
}

// plain 将有序映射递归展开为 structpb 可识别的 map[string]any / []any。
func plain(v any) any {
	switch x := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		if x == nil {
			return nil
		}
		m := make(map[string]any, x.Len())
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = plain(pair.Value)
		}
		return m
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = plain(x[i])
		}
		return out
	default:
		return v
	}
}
