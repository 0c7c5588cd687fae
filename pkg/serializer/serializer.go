package serializer

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lk2023060901/openapi-serializer-go/pkg/log"
	"github.com/lk2023060901/openapi-serializer-go/pkg/metrics"
	"github.com/lk2023060901/openapi-serializer-go/pkg/schema"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/conc"
)

// Serializer 按 schema 注册表把领域对象投影为 JSON 兼容的数据。
//
// 输出只包含 *Object、[]any、字符串、数字、布尔值与 nil。
// Serializer 自身不持有可变的共享状态（候选成员缓存只在首次访问时写入），
// 可以被多个协程并发使用。
type Serializer struct {
	log.Binder

	registry     *schema.Registry
	maxDepth     int
	batchWorkers int

	// candidates 缓存 *schema.Type -> []candidate。
	candidates sync.Map

	poolOnce sync.Once
	poolOpts []conc.PoolOption
	pool     *conc.Pool[any]
}

// New 创建一个 Serializer。
func New(opts ...Option) *Serializer {
	s := &Serializer{
		registry: schema.Default(),
	}
	WithBatchWorkers(0)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSerializer = sync.OnceValue(func() *Serializer {
	return New()
})

// Default 返回使用 schema.Default() 的进程级 Serializer。
func Default() *Serializer {
	return defaultSerializer()
}

// Serialize 使用默认 Serializer 序列化 resource。
func Serialize(resource any, ctx Context) (any, error) {
	return Default().Serialize(resource, ctx)
}

// Registry 返回 Serializer 使用的 schema 注册表。
func (s *Serializer) Registry() *schema.Registry {
	return s.registry
}

// Serialize 序列化 resource。
// getter 返回的错误原样返回，此时不产生任何部分结果。
func (s *Serializer) Serialize(resource any, ctx Context) (any, error) {
	start := time.Now()
	out, err := s.serialize(resource, ctx, 0)

	status := metrics.SuccessLabel
	if err != nil {
		status = metrics.FailLabel
		if l := s.Logger(); l.Enabled(zapcore.DebugLevel) {
			l.Debug("serialize failed", zap.String("resource", typeName(resource)), zap.Error(err))
		}
		out = nil
	}
	metrics.SerializeTotal.WithLabelValues(status).Inc()
	metrics.SerializeLatency.WithLabelValues(status).Observe(float64(time.Since(start).Microseconds()) / 1000)
	return out, err
}

// Close 释放批量序列化使用的协程池。
func (s *Serializer) Close() {
	s.poolOnce.Do(func() {})
	if s.pool != nil {
		s.pool.Release()
	}
}
