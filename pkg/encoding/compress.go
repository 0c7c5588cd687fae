package encoding

import (
	"runtime"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

// CompressedEncoder 在内层编码器的输出上再做一次 zstd 压缩。
// ContentType 与内层一致，压缩方式由调用方通过 Content-Encoding 等渠道告知对端。
type CompressedEncoder struct {
	inner Encoder
	enc   *zstd.Encoder
	// minSize 为 EncodeContent 触发压缩的最小字节数。
	minSize int

	closeOnce sync.Once
}

var (
	_ Encoder        = (*CompressedEncoder)(nil)
	_ ContentEncoder = (*CompressedEncoder)(nil)
)

// NewZstd 用 zstd 包装 inner。concurrency <= 0 时使用 GOMAXPROCS。
func NewZstd(inner Encoder, concurrency int, minSize int) (*CompressedEncoder, error) {
	if inner == nil {
		return nil, merr.WrapErrParameterInvalidMsg("nil inner encoder")
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	if minSize < 0 {
		minSize = 0
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithZeroFrames(true),
		zstd.WithEncoderConcurrency(concurrency),
	)
	if err != nil {
		return nil, merr.WrapErrEncodeFailed("zstd", err)
	}
	return &CompressedEncoder{
		inner:   inner,
		enc:     enc,
		minSize: minSize,
	}, nil
}

func (c *CompressedEncoder) Name() string { return c.inner.Name() + "+zstd" }

func (c *CompressedEncoder) ContentType() string { return c.inner.ContentType() }

// ContentEncoding 返回 Encode 输出对应的 HTTP Content-Encoding 值。
func (c *CompressedEncoder) ContentEncoding() string { return "zstd" }

// Encode 总是压缩内层编码器的输出。
func (c *CompressedEncoder) Encode(v any) ([]byte, error) {
	data, err := c.inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return c.compress(data), nil
}

// EncodeContent 仅在输出不短于 minSize 时压缩，并返回实际使用的 Content-Encoding，
// 未压缩时为空。
func (c *CompressedEncoder) EncodeContent(v any) ([]byte, string, error) {
	data, err := c.inner.Encode(v)
	if err != nil {
		return nil, "", err
	}
	if len(data) < c.minSize {
		return data, "", nil
	}
	return c.compress(data), c.ContentEncoding(), nil
}

func (c *CompressedEncoder) compress(data []byte) []byte {
	return c.enc.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Close 释放 zstd encoder 持有的协程与缓冲区。
func (c *CompressedEncoder) Close() {
	c.closeOnce.Do(func() {
		_ = c.enc.Close()
	})
}
