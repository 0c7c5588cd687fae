package serializer

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lk2023060901/openapi-serializer-go/pkg/log"
	"github.com/lk2023060901/openapi-serializer-go/pkg/metrics"
	"github.com/lk2023060901/openapi-serializer-go/pkg/schema"
)

// resolve 计算候选成员在 resource 上的键值对。
// present 为 false 表示该成员不出现在输出中，这与值为 nil 不同。
//
// 同一成员上的元数据条目共享同一个访问器，因此取值只做一次，
// 第一条元数据决定输出键。
func (s *Serializer) resolve(t *schema.Type, resource any, c candidate, ctx Context, depth int) (key string, value any, present bool, err error) {
	m := &c.member

	var raw any
	switch m.Kind {
	case schema.KindProperty:
		var ok bool
		if raw, ok = m.Read(resource); !ok {
			s.omit(t, c, metrics.OmitTypeMismatch)
			return "", nil, false, nil
		}
	case schema.KindMethod:
		args, ok := bind(m.Params, ctx)
		if !ok {
			s.omit(t, c, metrics.OmitUnbound)
			return "", nil, false, nil
		}
		raw, ok, err = m.Invoke(resource, args)
		if err != nil {
			if l := s.Logger(); l.Enabled(zapcore.DebugLevel) {
				l.Debug("getter failed", s.memberFields(t, c, zap.Error(err))...)
			}
			return "", nil, false, err
		}
		if !ok {
			s.omit(t, c, metrics.OmitTypeMismatch)
			return "", nil, false, nil
		}
	default:
		s.omit(t, c, metrics.OmitTypeMismatch)
		return "", nil, false, nil
	}

	value, err = s.serialize(raw, ctx, depth+1)
	if err != nil {
		return "", nil, false, err
	}
	return m.KeyFor(m.Properties[0]), value, true, nil
}

func (s *Serializer) omit(t *schema.Type, c candidate, reason string) {
	metrics.MemberOmittedTotal.WithLabelValues(t.Name(), reason).Inc()
	if l := s.Logger(); l.Enabled(zapcore.DebugLevel) {
		l.Debug("member omitted", s.memberFields(t, c, zap.String("reason", reason))...)
	}
}

func (s *Serializer) memberFields(t *schema.Type, c candidate, extra ...zap.Field) []zap.Field {
	fields := []zap.Field{
		log.FieldSchema(t.Name()),
		log.FieldMember(c.member.Name),
	}
	if c.via != "" {
		fields = append(fields, zap.String("via", c.via))
	}
	return append(fields, extra...)
}
