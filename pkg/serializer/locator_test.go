package serializer

import (
	"reflect"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/openapi-serializer-go/pkg/schema"
)

func lookup(t *testing.T, r *schema.Registry, rt reflect.Type) *schema.Type {
	typ, ok := r.Lookup(rt)
	require.True(t, ok)
	return typ
}

func TestLocateOrder(t *testing.T) {
	r := schema.NewRegistry()
	registerFixtures(r)

	names := func(cs []candidate) []string {
		return lo.Map(cs, func(c candidate, _ int) string { return c.via + ":" + c.member.Name })
	}

	assert.Equal(t, []string{"Greeter:GetGreeting", ":GetData"},
		names(locate(lookup(t, r, reflect.TypeFor[Third]()))))
	assert.Equal(t, []string{"Greeter:GetGreeting", ":GetGreeting", ":GetAnotherGreeting", ":GetFarewell"},
		names(locate(lookup(t, r, reflect.TypeFor[Overridden]()))))
	assert.Equal(t, []string{"Greeter:GetGreeting", "Namer:GetName"},
		names(locate(lookup(t, r, reflect.TypeFor[*Person]()))))
	assert.Equal(t, []string{"Hello:Hello", "Hola:Hola"},
		names(locate(lookup(t, r, reflect.TypeFor[Bilingual]()))))

	// 没有元数据的字段被丢弃。
	assert.Equal(t, []string{":greeting", ":_greeting"},
		names(locate(lookup(t, r, reflect.TypeFor[PublicSample]()))))
}

func TestCandidatesCached(t *testing.T) {
	r := schema.NewRegistry()
	registerFixtures(r)
	s := New(WithRegistry(r))

	typ := lookup(t, r, reflect.TypeFor[Third]())
	first := s.candidatesOf(typ)
	second := s.candidatesOf(typ)
	require.Len(t, first, 2)
	assert.Same(t, &first[0], &second[0])
}

func TestBind(t *testing.T) {
	args, ok := bind(nil, nil)
	assert.True(t, ok)
	assert.Equal(t, 0, args.Len())

	_, ok = bind([]string{"auth"}, Context{})
	assert.False(t, ok)

	_, ok = bind([]string{"auth", "locale"}, Context{"auth": 1, "page": 2})
	assert.False(t, ok)

	args, ok = bind([]string{"auth"}, Context{"auth": nil, "page": 2})
	assert.True(t, ok)
	assert.Equal(t, 1, args.Len())
	v, present := args.Get("auth")
	assert.True(t, present)
	assert.Nil(t, v)
	_, present = args.Get("page")
	assert.False(t, present)
}

func TestResolveTypeMismatch(t *testing.T) {
	r := schema.NewRegistry()
	registerFixtures(r)
	s := New(WithRegistry(r))

	typ := lookup(t, r, reflect.TypeFor[PublicSample]())
	cs := s.candidatesOf(typ)
	_, _, present, err := s.resolve(typ, Sample{}, cs[0], nil, 0)
	assert.NoError(t, err)
	assert.False(t, present)

	typ = lookup(t, r, reflect.TypeFor[Sample]())
	cs = s.candidatesOf(typ)
	_, _, present, err = s.resolve(typ, []any{}, cs[0], nil, 0)
	assert.NoError(t, err)
	assert.False(t, present)

	key, value, present, err := s.resolve(typ, Sample{}, cs[0], nil, 0)
	assert.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "greeting", key)
	assert.Equal(t, "hello world", value)
}
