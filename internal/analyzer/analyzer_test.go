package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/types"
)

func TestIsCopy(t *testing.T) {
	testCases := []struct {
		name string
		typ  string
		kind config.Kind
		want bool
	}{
		{"Scalar", "u32", config.KindGet, true},
		{"Bool", "bool", config.KindGet, true},
		{"Char", "char", config.KindInto, true},
		{"Float", "f64", config.KindGet, true},
		{"PrimitivePath", "std::primitive::usize", config.KindGet, true},
		{"CorePrimitivePath", "core::primitive::i8", config.KindGet, true},
		{"ForeignPathNamedLikeScalar", "my::u32", config.KindGet, false},
		{"String", "String", config.KindGet, false},
		{"Vec", "Vec<u8>", config.KindGet, false},
		{"OptionOfScalar", "Option<u32>", config.KindGet, false},
		{"Unit", "()", config.KindGet, false},
		{"SharedRef", "&'a str", config.KindGet, true},
		{"SharedRefMutBorrow", "&'a str", config.KindGetMut, true},
		{"MutRefBorrow", "&'a mut String", config.KindGet, false},
		{"MutRefMutBorrow", "&'a mut String", config.KindGetMut, true},
		{"MutRefInto", "&'a mut String", config.KindInto, false},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCopy(types.MustParse(tt.typ), tt.kind))
		})
	}
}

func TestUnwrapOptional(t *testing.T) {
	testCases := []struct {
		typ   string
		inner string
		ok    bool
	}{
		{"Option<String>", "String", true},
		{"std::option::Option<u8>", "u8", true},
		{"::core::option::Option<Vec<u8>>", "Vec<u8>", true},
		{"Option<Option<u8>>", "Option<u8>", true},
		{"Option", "", false},
		{"my::Option<u8>", "", false},
		{"Result<u8, E>", "", false},
		{"&Option<u8>", "", false},
	}
	for _, tt := range testCases {
		t.Run(tt.typ, func(t *testing.T) {
			inner, ok := UnwrapOptional(types.MustParse(tt.typ))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.inner, inner.String())
			}
		})
	}
}

func TestInferDerefTarget(t *testing.T) {
	testCases := []struct {
		typ    string
		target string
		ok     bool
	}{
		{"String", "str", true},
		{"std::string::String", "str", true},
		{"PathBuf", "std::path::Path", true},
		{"Vec<u8>", "[u8]", true},
		{"Vec<Vec<u8>>", "[Vec<u8>]", true},
		{"Box<dyn_trait::Foo>", "dyn_trait::Foo", true},
		{"std::rc::Rc<Node>", "Node", true},
		{"Arc<Mutex<u8>>", "Mutex<u8>", true},
		{"Cow<'a, str>", "str", true},
		{"std::borrow::Cow<'static, [u8]>", "[u8]", true},
		{"u32", "", false},
		{"Option<String>", "", false},
		{"&String", "", false},
		{"HashMap<K, V>", "", false},
	}
	for _, tt := range testCases {
		t.Run(tt.typ, func(t *testing.T) {
			target, ok := InferDerefTarget(types.MustParse(tt.typ))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.target, target.String())
			}
		})
	}
}

func TestRecognizersAreIndependent(t *testing.T) {
	s := types.MustParse("String")
	_, ok := OwnedString(s)
	assert.True(t, ok)
	_, ok = OwnedArray(s)
	assert.False(t, ok)
	_, ok = SmartPointer(s)
	assert.False(t, ok)
	_, ok = CopyOnWrite(s)
	assert.False(t, ok)
}

func TestDerefChain(t *testing.T) {
	target, depth := DerefChain(types.MustParse("Rc<Vec<String>>"))
	assert.Equal(t, "[String]", target.String())
	assert.Equal(t, 2, depth)

	target, depth = DerefChain(types.MustParse("Box<String>"))
	assert.Equal(t, "str", target.String())
	assert.Equal(t, 2, depth)

	target, depth = DerefChain(types.MustParse("u8"))
	assert.Equal(t, "u8", target.String())
	assert.Equal(t, 0, depth)
}

func TestResolveQualified(t *testing.T) {
	testCases := []struct {
		typ  string
		want string
	}{
		{"<String as Deref>::Target", "str"},
		{"<Box<Vec<u8>> as ::core::ops::Deref>::Target", "Vec<u8>"},
		{"<<Box<String> as Deref>::Target as Deref>::Target", "str"},
		{"<Foo as Deref>::Target", "<Foo as Deref>::Target"},
		{"<String as Iterator>::Item", "<String as Iterator>::Item"},
		{"Vec<u8>", "Vec<u8>"},
	}
	for _, tt := range testCases {
		t.Run(tt.typ, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveQualified(types.MustParse(tt.typ)).String())
		})
	}
}
