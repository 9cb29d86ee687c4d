package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParameters(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "quoted string", input: `"hello world"`, want: []string{"hello world"}},
		{name: "plain tokens", input: "1 1 1", want: []string{"1", "1", "1"}},
		{name: "repeated spaces", input: "a   b ", want: []string{"a", "b"}},
		{name: "mixed quoted and plain", input: `x "a b" y`, want: []string{"x", "a b", "y"}},
		{name: "empty quotes", input: `""`, want: []string{""}},
		{name: "quote inside token", input: `ab"cd ef"`, want: []string{"abcd ef"}},
		{name: "unterminated quote", input: `one "two three`, want: []string{"one", "two three"}},
		{name: "unterminated empty quote", input: `one "`, want: []string{"one"}},
		{name: "tabs are not separators", input: "a\tb", want: []string{"a\tb"}},
		{name: "commas stay in token", input: "3,3,3", want: []string{"3,3,3"}},
		{name: "empty", input: "", want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractParameters(tc.input))
		})
	}
}

func TestConvertParameter(t *testing.T) {
	testCases := []struct {
		name    string
		param   Parameter
		token   string
		want    interface{}
		wantErr bool
	}{
		{name: "bool true", param: Bool("b"), token: "true", want: true},
		{name: "bool mixed case", param: Bool("b"), token: "False", want: false},
		{name: "bool upper case", param: Bool("b"), token: "TRUE", want: true},
		{name: "bool invalid", param: Bool("b"), token: "yes", wantErr: true},
		{name: "bool digit one", param: Bool("b"), token: "1", wantErr: true},
		{name: "bool digit zero", param: Bool("b"), token: "0", wantErr: true},
		{name: "bool short t", param: Bool("b"), token: "t", wantErr: true},
		{name: "bool short F", param: Bool("b"), token: "F", wantErr: true},
		{name: "int", param: Int("n"), token: "-12", want: -12},
		{name: "int rejects float", param: Int("n"), token: "1.5", wantErr: true},
		{name: "float", param: Float("f"), token: "2.25", want: 2.25},
		{name: "float invalid", param: Float("f"), token: "two", wantErr: true},
		{name: "string verbatim", param: String("s"), token: "Hello World", want: "Hello World"},
		{name: "vector2", param: Vec2("v"), token: "1,-2.5", want: Vector2{X: 1, Y: -2.5}},
		{name: "vector2 wrong arity", param: Vec2("v"), token: "1,2,3", wantErr: true},
		{name: "vector3", param: Vec3("v"), token: "3,3,3", want: Vector3{X: 3, Y: 3, Z: 3}},
		{name: "vector3 spaces", param: Vec3("v"), token: " 1 , 2 , 3 ", want: Vector3{X: 1, Y: 2, Z: 3}},
		{name: "vector3 wrong arity", param: Vec3("v"), token: "3,3", wantErr: true},
		{name: "vector3 bad component", param: Vec3("v"), token: "3,x,3", wantErr: true},
		{name: "enum exact", param: Enum("e", "Red", "Green"), token: "Green", want: "Green"},
		{name: "enum ignores case", param: Enum("e", "Red", "Green"), token: "rEd", want: "Red"},
		{name: "enum unknown", param: Enum("e", "Red", "Green"), token: "Blue", wantErr: true},
		{name: "unsupported kind", param: Parameter{Name: "x", Kind: ArgKind(99)}, token: "1", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ConvertParameter(tc.param, tc.token)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrCoercion)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestArgsAccessors(t *testing.T) {
	args := Args{true, 7, 1.5, "text", Vector2{X: 1, Y: 2}, Vector3{X: 1, Y: 2, Z: 3}, "Hard"}

	assert.True(t, args.Bool(0))
	assert.Equal(t, 7, args.Int(1))
	assert.Equal(t, 1.5, args.Float(2))
	assert.Equal(t, "text", args.Text(3))
	assert.Equal(t, Vector2{X: 1, Y: 2}, args.Vector2(4))
	assert.Equal(t, Vector3{X: 1, Y: 2, Z: 3}, args.Vector3(5))
	assert.Equal(t, "Hard", args.Enum(6))
	assert.Panics(t, func() { args.Int(0) })
}

func TestVectorString(t *testing.T) {
	assert.Equal(t, "(3.00, 3.00, 3.00)", Vector3{X: 3, Y: 3, Z: 3}.String())
	assert.Equal(t, "(1.50, -2.00)", Vector2{X: 1.5, Y: -2}.String())
}

func TestCommandUsage(t *testing.T) {
	c := &Command{
		Name:   "Commands",
		Params: []Parameter{String("filter"), Int("pageIndex").Optional(1)},
	}

	assert.Equal(t, "commands <filter> [pageIndex]", c.Usage())
	assert.Equal(t, []string{"filter", "pageIndex"}, c.ParamNames())
	assert.Equal(t, 1, c.RequiredParams())
}

func TestArgKindString(t *testing.T) {
	assert.Equal(t, "vector3", KindVector3.String())
	assert.Equal(t, "enum", KindEnum.String())
	assert.Equal(t, "ArgKind(42)", ArgKind(42).String())
}
