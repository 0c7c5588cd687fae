package encoding

import (
	"sort"
	"sync"

	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

// Encoder 抽象了“序列化结果 -> 字节流”的编码能力。
//
// 设计目标：
//   - 输入为 serializer 产出的纯数据（有序映射、序列、标量与 nil）；
//   - 既支持 JSON，也支持 Protobuf 等二进制格式；
//   - 调用方通过名称选择具体实现，便于通过配置切换。
type Encoder interface {
	// Name 返回编码器名称，用于配置与注册表查找。
	Name() string

	// ContentType 返回编码结果对应的 MIME 类型。
	ContentType() string

	// Encode 将序列化结果编码为字节序列。
	Encode(v any) ([]byte, error)
}

// ContentEncoder 由会改变传输编码的编码器实现，例如压缩。
type ContentEncoder interface {
	// EncodeContent 编码 v，并返回结果实际使用的 Content-Encoding，空字符串表示未经变换。
	EncodeContent(v any) ([]byte, string, error)
}

// EncodeContent 使用 enc 编码 v，并返回结果实际使用的 Content-Encoding。
func EncodeContent(enc Encoder, v any) ([]byte, string, error) {
	if ce, ok := enc.(ContentEncoder); ok {
		return ce.EncodeContent(v)
	}
	data, err := enc.Encode(v)
	return data, "", err
}

var (
	mu       sync.RWMutex
	encoders = map[string]Encoder{}
)

func init() {
	Register(JSONEncoder{})
	Register(JSONIterEncoder{})
	Register(ProtoEncoder{})
	Register(MsgpackEncoder{})
}

// Register 注册一个编码器，同名编码器会被覆盖。
func Register(enc Encoder) {
	mu.Lock()
	defer mu.Unlock()
	encoders[enc.Name()] = enc
}

// Get 按名称返回已注册的编码器。
func Get(name string) (Encoder, error) {
	mu.RLock()
	defer mu.RUnlock()
	enc, ok := encoders[name]
	if !ok {
		return nil, merr.WrapErrEncoderNotFound(name)
	}
	return enc, nil
}

// Names 返回所有已注册编码器的名称（升序）。
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
