package encoding

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/lk2023060901/openapi-serializer-go/internal/json"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

const (
	jsonContentType = "application/json"
)

// JSONEncoder 使用 internal/json（基于 bytedance/sonic）实现 JSON 编码。
type JSONEncoder struct{}

// 编译期断言：确保 JSONEncoder 实现了 Encoder 接口。
var _ Encoder = (*JSONEncoder)(nil)

func (JSONEncoder) Name() string { return "json" }

func (JSONEncoder) ContentType() string { return jsonContentType }

func (e JSONEncoder) Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, merr.WrapErrEncodeFailed(e.Name(), err)
	}
	return data, nil
}

// JSONIterEncoder 使用 json-iterator 的标准库兼容配置实现 JSON 编码，
// 适用于 sonic 不支持的平台。
type JSONIterEncoder struct{}

var _ Encoder = (*JSONIterEncoder)(nil)

var jsoniterAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func (JSONIterEncoder) Name() string { return "jsoniter" }

func (JSONIterEncoder) ContentType() string { return jsonContentType }

func (e JSONIterEncoder) Encode(v any) ([]byte, error) {
	data, err := jsoniterAPI.Marshal(v)
	if err != nil {
		return nil, merr.WrapErrEncodeFailed(e.Name(), err)
	}
	return data, nil
}
