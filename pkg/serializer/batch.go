package serializer

import (
	"github.com/lk2023060901/openapi-serializer-go/pkg/metrics"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/conc"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

// SerializeBatch 并发序列化多个互不相关的资源，结果与输入一一对应。
// 每个资源仍然是全有或全无；任一资源失败时整批返回合并后的错误。
// 非阻塞协程池已满时，被拒绝的资源以 ErrServiceTooManyRequests 计入错误。
func (s *Serializer) SerializeBatch(resources []any, ctx Context) ([]any, error) {
	if len(resources) == 0 {
		return []any{}, nil
	}

	s.poolOnce.Do(func() {
		s.pool = conc.NewPool[any](s.batchWorkers, s.poolOpts...)
	})
	if s.pool == nil {
		return nil, merr.WrapErrServiceInternal("serializer closed", "batch pool is not available")
	}

	metrics.BatchPending.Add(float64(len(resources)))
	futures := make([]*conc.Future[any], len(resources))
	for i := range resources {
		resource := resources[i]
		futures[i] = s.pool.Submit(func() (any, error) {
			return s.Serialize(resource, ctx)
		})
	}

	out := make([]any, len(resources))
	var errs []error
	for i, future := range futures {
		value, err := future.Await()
		metrics.BatchPending.Dec()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[i] = value
	}
	if err := merr.Combine(errs...); err != nil {
		return nil, err
	}
	return out, nil
}
