package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

type greeter interface {
	Greeting() string
}

type namer interface {
	greeter
	Name() string
}

type first struct{}

func (first) Greeting() string { return "hello world" }

type second struct {
	first
	Tag string
}

func (second) Data() []any { return []any{} }

type loud struct{ second }

func (loud) Greeting() string { return "HELLO WORLD" }

type SchemaSuite struct {
	suite.Suite

	greeter *Interface
	first   *Type
}

func (s *SchemaSuite) SetupTest() {
	s.greeter = NewInterface[greeter]("Greeter").
		Getter("greeting", func(g greeter) any { return g.Greeting() }).
		MustBuild()
	s.first = Object[first]("First").
		Implements(s.greeter).
		MustBuild()
}

func (s *SchemaSuite) TestObjectMembers() {
	typ, err := Object[second]("Second").
		Field("tag", func(v second) any { return v.Tag }, Auto).
		Field("hidden", func(v second) any { return true }).
		Getter("data", func(v second) any { return v.Data() }).
		Build()
	s.Require().NoError(err)

	s.Equal("Second", typ.Name())
	s.Equal(reflect.TypeFor[second](), typ.GoType())
	s.Len(typ.Fields(), 2)
	s.Equal([]Property{{Kind: KindProperty}}, typ.Fields()[0].Properties)
	s.Empty(typ.Fields()[1].Properties)

	tag := typ.Fields()[0]
	v, ok := tag.Read(second{Tag: "x"})
	s.True(ok)
	s.Equal("x", v)
	s.Equal("tag", tag.KeyFor(tag.Properties[0]))

	_, ok = tag.Read(first{})
	s.False(ok)

	data := typ.Methods()[0]
	s.Equal("GetData", data.Name)
	s.Equal("data", data.KeyFor(data.Properties[0]))
	out, ok, err := data.Invoke(second{}, NoArgs)
	s.NoError(err)
	s.True(ok)
	s.Equal([]any{}, out)

	_, ok = data.Read(second{})
	s.False(ok)
}

func (s *SchemaSuite) TestExtendsOverride() {
	base := Object[second]("Second").
		Getter("data", func(v second) any { return v.Data() }).
		Getter("greeting", func(v second) any { return v.Greeting() })
	base = Extends(base, s.first, func(v second) first { return v.first })
	secondType, err := base.Build()
	s.Require().NoError(err)
	s.Equal(s.first, secondType.Parent())
	s.Equal([]*Interface{s.greeter}, secondType.Interfaces())

	loudBuilder := Object[loud]("Loud")
	loudBuilder = Extends(loudBuilder, secondType, func(v loud) second { return v.second })
	loudType, err := loudBuilder.
		Getter("greeting", func(v loud) any { return v.Greeting() }).
		Build()
	s.Require().NoError(err)

	methods := loudType.Methods()
	s.Require().Len(methods, 2)
	s.Equal("GetGreeting", methods[0].Name)
	s.Equal("Loud", methods[0].Owner)
	s.Equal("GetData", methods[1].Name)
	s.Equal("Second", methods[1].Owner)

	out, ok, err := methods[0].Invoke(loud{}, nil)
	s.NoError(err)
	s.True(ok)
	s.Equal("HELLO WORLD", out)

	// 继承的成员通过 upcast 读取父类型。
	out, ok, err = methods[1].Invoke(loud{}, nil)
	s.NoError(err)
	s.True(ok)
	s.Equal([]any{}, out)

	_, ok, _ = methods[1].Invoke(second{}, nil)
	s.False(ok)
}

func (s *SchemaSuite) TestInterfaceEmbeds() {
	n, err := NewInterface[namer]("Namer").
		Embeds(s.greeter).
		Method("Name", []string{"locale"}, func(v namer, _ Args) (any, error) { return v.Name(), nil }, Key("name")).
		Build()
	s.Require().NoError(err)
	s.Equal([]*Interface{s.greeter}, n.Embeds())
	s.Equal([]string{"locale"}, n.Methods()[0].Params)
	s.Equal("Namer", n.Methods()[0].Owner)

	_, err = NewInterface[greeter]("Greeter").Embeds(n).Build()
	s.ErrorIs(err, merr.ErrSchemaInvalid)

	_, err = NewInterface[first]("First").Build()
	s.ErrorIs(err, merr.ErrSchemaInvalid)
}

func (s *SchemaSuite) TestBuildErrors() {
	_, err := Object[first]("First").
		Getter("greeting", func(first) any { return "a" }).
		Getter("greeting", func(first) any { return "b" }).
		Build()
	s.ErrorIs(err, merr.ErrSchemaInvalid)

	_, err = Object[first]("First").
		Field("greeting", func(first) any { return "a" }, Property{Key: "greeting", Kind: KindMethod}).
		Build()
	s.ErrorIs(err, merr.ErrSchemaInvalid)

	_, err = Object[first]("First").
		Method("GetSecret", []string{"auth", "auth"}, func(first, Args) (any, error) { return nil, nil }, Auto).
		Build()
	s.ErrorIs(err, merr.ErrSchemaInvalid)

	_, err = Object[first]("First").Field("greeting", nil, Auto).Build()
	s.ErrorIs(err, merr.ErrSchemaInvalid)

	_, err = Object[first]("").Build()
	s.ErrorIs(err, merr.ErrSchemaInvalid)

	_, err = Object[struct{}]("Empty").Implements(s.greeter).Build()
	s.ErrorIs(err, merr.ErrSchemaNotImplemented)

	_, err = Extends(Object[second]("Second"), s.first, (func(second) second)(nil)).Build()
	s.ErrorIs(err, merr.ErrSchemaInvalid)

	_, err = Extends(Object[second]("Second"), s.first, func(v second) second { return v }).Build()
	s.ErrorIs(err, merr.ErrSchemaInvalid)
}

func (s *SchemaSuite) TestRegistry() {
	r := NewRegistry()
	s.NoError(r.Register(s.first))
	s.Equal(1, r.Len())

	typ, ok := r.Lookup(reflect.TypeFor[first]())
	s.True(ok)
	s.Equal(s.first, typ)

	typ, ok = r.Lookup(reflect.TypeFor[*first]())
	s.True(ok)
	s.Equal(s.first, typ)

	typ, ok = r.LookupName("First")
	s.True(ok)
	s.Equal(s.first, typ)

	_, ok = r.Lookup(reflect.TypeFor[second]())
	s.False(ok)
	_, ok = r.Lookup(nil)
	s.False(ok)

	s.ErrorIs(r.Register(s.first), merr.ErrSchemaAlreadyRegistered)

	// 同一批次内出现冲突时整批不注册。
	other := Object[second]("Second").MustBuild()
	dup := Object[*second]("Second").MustBuild()
	s.ErrorIs(r.Register(other, dup), merr.ErrSchemaAlreadyRegistered)
	_, ok = r.LookupName("Second")
	s.False(ok)

	ptr := Object[*second]("SecondPtr").MustBuild()
	s.NoError(r.Register(ptr))
	typ, ok = r.Lookup(reflect.TypeFor[second]())
	s.True(ok)
	s.Equal(ptr, typ)

	s.Panics(func() { r.MustRegister(ptr) })
}

func TestSchema(t *testing.T) {
	suite.Run(t, new(SchemaSuite))
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "GetGreeting", GetterName("greeting"))
	assert.Equal(t, "GetAnotherGreeting", GetterName("another_greeting"))
	assert.Equal(t, "GetUserId", GetterName("user-id"))

	assert.Equal(t, "greeting", DeriveKey("GetGreeting"))
	assert.Equal(t, "anotherGreeting", DeriveKey("GetAnotherGreeting"))
	assert.Equal(t, "greeting", DeriveKey("Greeting"))
	assert.Equal(t, "getaway", DeriveKey("Getaway"))
	assert.Equal(t, "get", DeriveKey("Get"))
}

func TestArg(t *testing.T) {
	type authorizer interface{ Allowed() bool }

	args := NewArgs(map[string]any{"page": 2, "auth": nil, "flag": nil})
	assert.Equal(t, 3, args.Len())

	page, err := Arg[int](args, "page")
	assert.NoError(t, err)
	assert.Equal(t, 2, page)

	_, err = Arg[string](args, "page")
	assert.ErrorIs(t, err, merr.ErrParameterInvalid)

	_, err = Arg[int](args, "size")
	assert.ErrorIs(t, err, merr.ErrParameterMissing)

	auth, err := Arg[authorizer](args, "auth")
	assert.NoError(t, err)
	assert.Nil(t, auth)

	_, err = Arg[bool](args, "flag")
	assert.ErrorIs(t, err, merr.ErrParameterInvalid)

	_, err = Arg[int](NoArgs, "page")
	assert.ErrorIs(t, err, merr.ErrParameterMissing)
	_, err = Arg[int](nil, "page")
	assert.ErrorIs(t, err, merr.ErrParameterMissing)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "property", KindProperty.String())
	assert.Equal(t, "method", KindMethod.String())
	assert.Equal(t, "unknown", Kind(0).String())
	assert.True(t, Auto.Derived())
	assert.False(t, Key("greeting").Derived())
}
