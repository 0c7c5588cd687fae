package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r := prometheus.NewRegistry()
	Register(r)
	// second call is a no-op
	Register(r)
	assert.Equal(t, r, GetRegisterer())

	SerializeTotal.WithLabelValues(SuccessLabel).Inc()
	MemberOmittedTotal.WithLabelValues("Sample", OmitUnbound).Inc()

	families, err := r.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "zeus_serializer_serialize_total")
	assert.Contains(t, names, "zeus_serializer_member_omitted_total")
}
