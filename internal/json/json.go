// Package json 基于 bytedance/sonic 提供与标准库兼容的 JSON 编解码。
package json

import (
	"github.com/bytedance/sonic"
)

// api 采用与 encoding/json 行为一致的配置（转义 HTML、map 键排序、校验字符串）。
var api = sonic.ConfigStd

func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}
