package serializer

import (
	"time"

	"github.com/lk2023060901/openapi-serializer-go/pkg/schema"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

type Greeter interface {
	GetGreeting() string
}

type Namer interface {
	Greeter
	GetName() string
}

type Hello interface{ Hello() string }

type Hola interface{ Hola() string }

type Sample struct{}

func (Sample) GetGreeting() string { return "hello world" }

type Inherited struct{ Sample }

type First struct{}

func (First) GetGreeting() string { return "hello world" }

type Second struct{ First }

func (Second) GetData() []any { return []any{} }

type Third struct{ Second }

func (Third) GetGreeting() string { return "buenos dias" }

type SampleSchema struct{}

func (SampleSchema) GetGreeting() string { return "hello world" }

type NestedSample struct{}

func (NestedSample) GetData() SampleSchema { return SampleSchema{} }

type PublicSample struct {
	Greeting      string
	AltGreeting   string
	NotSerialized bool
}

type Authorizer interface {
	HasPermission(resource any) (bool, error)
}

var errUnauthenticated = merr.WrapErrPrivilegeNotAuthenticated("401")

type fakeAuth struct {
	canAck  bool
	canView bool
}

func (a fakeAuth) HasPermission(any) (bool, error) {
	if !a.canAck {
		return false, errUnauthenticated
	}
	return a.canView, nil
}

type ProtectedSample struct{}

func (p ProtectedSample) GetSecret(auth Authorizer) (any, error) {
	if auth == nil {
		return nil, merr.WrapErrPrivilegeNotAuthenticated("no authorizer")
	}
	ok, err := auth.HasPermission(p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return "s3cr3t!", nil
}

type Overridden struct{}

func (Overridden) GetGreeting() string { return "from interface" }

type Bilingual struct{}

func (Bilingual) Hello() string { return "hello" }
func (Bilingual) Hola() string  { return "hola" }

type Person struct{ name string }

func (p Person) GetGreeting() string { return "hi " + p.name }
func (p Person) GetName() string     { return p.name }

type Node struct {
	Next *Node
}

type Status string

type Stamp struct{ time.Time }

type Instant time.Time

type Labeled struct{ Code string }

func (Labeled) GetLabel() string { return "label" }

type Level int

type Broken struct{}

type fixtures struct {
	greeter *schema.Interface
	namer   *schema.Interface
}

// registerFixtures 在 r 中注册测试使用的全部类型。
func registerFixtures(r *schema.Registry) fixtures {
	greeter := schema.NewInterface[Greeter]("Greeter").
		Getter("greeting", func(g Greeter) any { return g.GetGreeting() }).
		MustBuild()
	namer := schema.NewInterface[Namer]("Namer").
		Embeds(greeter).
		Getter("name", func(n Namer) any { return n.GetName() }).
		MustBuild()
	hello := schema.NewInterface[Hello]("Hello").
		Method("Hello", nil, func(h Hello, _ schema.Args) (any, error) { return h.Hello(), nil }, schema.Key("greeting")).
		MustBuild()
	hola := schema.NewInterface[Hola]("Hola").
		Method("Hola", nil, func(h Hola, _ schema.Args) (any, error) { return h.Hola(), nil }, schema.Key("greeting")).
		MustBuild()

	sample := schema.Object[Sample]("Sample").
		Getter("greeting", func(v Sample) any { return v.GetGreeting() }).
		MustBuild()
	inherited := schema.Extends(schema.Object[Inherited]("Inherited"), sample,
		func(v Inherited) Sample { return v.Sample }).
		MustBuild()

	first := schema.Object[First]("First").
		Implements(greeter).
		MustBuild()
	second := schema.Extends(
		schema.Object[Second]("Second").Getter("data", func(v Second) any { return v.GetData() }),
		first, func(v Second) First { return v.First }).
		MustBuild()
	third := schema.Extends(schema.Object[Third]("Third"), second,
		func(v Third) Second { return v.Second }).
		MustBuild()

	sampleSchema := schema.Object[SampleSchema]("SampleSchema").
		Getter("greeting", func(v SampleSchema) any { return v.GetGreeting() }).
		MustBuild()
	nested := schema.Object[NestedSample]("NestedSample").
		Getter("data", func(v NestedSample) any { return v.GetData() }).
		MustBuild()

	public := schema.Object[PublicSample]("PublicSample").
		Field("greeting", func(v PublicSample) any { return v.Greeting }, schema.Auto).
		Field("_greeting", func(v PublicSample) any { return v.AltGreeting }, schema.Key("another_greeting")).
		Field("not_serialized", func(v PublicSample) any { return v.NotSerialized }).
		MustBuild()

	protected := schema.Object[ProtectedSample]("ProtectedSample").
		Method("GetSecret", []string{"auth"}, func(p ProtectedSample, args schema.Args) (any, error) {
			auth, err := schema.Arg[Authorizer](args, "auth")
			if err != nil {
				return nil, err
			}
			return p.GetSecret(auth)
		}, schema.Key("secret")).
		MustBuild()

	overridden := schema.Object[Overridden]("Overridden").
		Implements(greeter).
		Method("GetGreeting", nil, func(Overridden, schema.Args) (any, error) { return "from class", nil }, schema.Key("greeting")).
		Getter("another_greeting", func(Overridden) any { return "hola mundo" }).
		Method("GetFarewell", nil, func(Overridden, schema.Args) (any, error) { return "adios", nil }, schema.Auto).
		MustBuild()

	bilingual := schema.Object[Bilingual]("Bilingual").
		Implements(hello, hola).
		MustBuild()

	person := schema.Object[*Person]("Person").
		Implements(namer, greeter).
		MustBuild()

	node := schema.Object[*Node]("Node").
		Getter("next", func(n *Node) any { return n.Next }).
		MustBuild()

	broken := schema.Object[Broken]("Broken").
		Getter("stream", func(Broken) any { return make(chan int) }).
		MustBuild()

	labeled := schema.Object[Labeled]("Labeled").
		Field("Code", func(v Labeled) any { return v.Code }, schema.Key("code"), schema.Key("identifier")).
		Method("GetLabel", nil, func(v Labeled, _ schema.Args) (any, error) { return v.GetLabel(), nil },
			schema.Key("title"), schema.Auto).
		MustBuild()

	r.MustRegister(sample, inherited, first, second, third, sampleSchema, nested, public,
		protected, overridden, bilingual, person, node, broken, labeled)
	return fixtures{greeter: greeter, namer: namer}
}
