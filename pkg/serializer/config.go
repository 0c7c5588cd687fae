package serializer

import (
	"runtime"
	"time"

	"github.com/lk2023060901/openapi-serializer-go/pkg/log"
	"github.com/lk2023060901/openapi-serializer-go/pkg/schema"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/conc"
)

// Config 是 serializer 配置段。
type Config struct {
	// MaxDepth 为容器的最大嵌套深度，0 表示不限制，见 WithMaxDepth。
	MaxDepth int `mapstructure:"max-depth"`
	// Encoder 为输出编码器名称，见 pkg/encoding。
	Encoder string `mapstructure:"encoder"`
	// Compression 为编码结果的压缩方式，可选 none 或 zstd。
	Compression string `mapstructure:"compression"`
	// BatchWorkers 为批量序列化协程池容量，<= 0 时使用 GOMAXPROCS。
	BatchWorkers int `mapstructure:"batch-workers"`
	// BatchNonBlocking 为 true 时协程池满后直接拒绝剩余资源，
	// SerializeBatch 返回 ErrServiceTooManyRequests 而不是排队等待。
	BatchNonBlocking bool `mapstructure:"batch-nonblocking"`
	// BatchPreAlloc 表示创建协程池时预分配 worker 队列。
	BatchPreAlloc bool `mapstructure:"batch-prealloc"`
	// BatchExpiry 为空闲 worker 的回收间隔，0 使用 ants 缺省值。
	BatchExpiry time.Duration `mapstructure:"batch-expiry"`
	// BatchDisablePurge 表示不回收空闲 worker。
	BatchDisablePurge bool `mapstructure:"batch-disable-purge"`
}

// DefaultConfig 返回缺省配置。
func DefaultConfig() Config {
	return Config{
		MaxDepth:     0,
		Encoder:      "json",
		Compression:  "none",
		BatchWorkers: runtime.GOMAXPROCS(0),
	}
}

// Options 返回与配置对应的 Option 列表。
func (c Config) Options() []Option {
	return []Option{
		WithMaxDepth(c.MaxDepth),
		WithBatchWorkers(c.BatchWorkers),
		WithBatchPool(
			conc.WithNonBlocking(c.BatchNonBlocking),
			conc.WithPreAlloc(c.BatchPreAlloc),
			conc.WithExpiryDuration(c.BatchExpiry),
			conc.WithDisablePurge(c.BatchDisablePurge),
		),
	}
}

// Option 用于配置 Serializer。
type Option func(s *Serializer)

// WithRegistry 指定 schema 注册表，缺省使用 schema.Default()。
func WithRegistry(r *schema.Registry) Option {
	return func(s *Serializer) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithMaxDepth 限制容器（对象、序列、映射）的嵌套深度，顶层容器深度为 0，
// 超过时返回 ErrMaxDepthExceeded，0 表示不限制。标量叶子不计入深度。
func WithMaxDepth(depth int) Option {
	return func(s *Serializer) {
		if depth < 0 {
			depth = 0
		}
		s.maxDepth = depth
	}
}

// WithBatchWorkers 设置 SerializeBatch 使用的协程数。
func WithBatchWorkers(n int) Option {
	return func(s *Serializer) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		s.batchWorkers = n
	}
}

// WithBatchPool 追加 SerializeBatch 协程池的选项，需在首次批量调用前生效。
func WithBatchPool(opts ...conc.PoolOption) Option {
	return func(s *Serializer) {
		s.poolOpts = append(s.poolOpts, opts...)
	}
}

// WithLogger 绑定 Serializer 使用的 Logger。
func WithLogger(logger *log.MLogger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.SetLogger(logger)
		}
	}
}
