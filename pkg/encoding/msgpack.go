package encoding

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

// MsgpackEncoder 使用 MessagePack 编码序列化结果，有序映射按键的插入顺序写出。
type MsgpackEncoder struct{}

var _ Encoder = (*MsgpackEncoder)(nil)

func (MsgpackEncoder) Name() string { return "msgpack" }

func (MsgpackEncoder) ContentType() string { return "application/msgpack" }

func (e MsgpackEncoder) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := writeMsgpack(enc, v); err != nil {
		return nil, merr.WrapErrEncodeFailed(e.Name(), err)
	}
	return buf.Bytes(), nil
}

// writeMsgpack 递归写出 v。msgpack 无法识别 OrderedMap，需要手动展开。
func writeMsgpack(enc *msgpack.Encoder, v any) error {
	switch x := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		if x == nil {
			return enc.EncodeNil()
		}
		if err := enc.EncodeMapLen(x.Len()); err != nil {
			return err
		}
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			if err := enc.EncodeString(pair.Key); err != nil {
				return err
			}
			if err := writeMsgpack(enc, pair.Value); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if err := enc.EncodeArrayLen(len(x)); err != nil {
			return err
		}
		for i := range x {
			if err := writeMsgpack(enc, x[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return enc.Encode(v)
	}
}
