package serializer

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TimeLayout 是时间值唯一的输出格式：RFC 3339，毫秒精度，数字时区偏移。
const TimeLayout = "2006-01-02T15:04:05.000-07:00"

// Object 是序列化输出的有序映射，键顺序即成员的发现顺序。
type Object = orderedmap.OrderedMap[string, any]

// NewObject 创建一个空的 Object。
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// Context 是调用方提供的具名参数，原样传递到每一层递归，序列化过程不会修改它。
type Context map[string]any

func formatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
