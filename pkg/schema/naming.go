package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

const getterPrefix = "Get"

// GetterName 返回输出键 key 对应的 getter 方法名，例如 another_greeting -> GetAnotherGreeting。
func GetterName(key string) string {
	return getterPrefix + lo.PascalCase(key)
}

// DeriveKey 由方法名推导输出键：去掉 Get 前缀后转为 camelCase。
// GetAnotherGreeting -> anotherGreeting，Greeting -> greeting。
func DeriveKey(method string) string {
	name := method
	if rest, ok := strings.CutPrefix(method, getterPrefix); ok && rest != "" {
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(r) || unicode.IsDigit(r) {
			name = rest
		}
	}
	return lo.CamelCase(name)
}
