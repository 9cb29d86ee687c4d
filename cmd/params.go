package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ArgKind is the closed set of argument types a command parameter may declare.
type ArgKind int

const (
	KindBool ArgKind = iota
	KindInt
	KindFloat
	KindString
	KindVector2
	KindVector3
	KindEnum
)

func (k ArgKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindVector2:
		return "vector2"
	case KindVector3:
		return "vector3"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("ArgKind(%d)", int(k))
	}
}

// Vector2 is a two component argument, written as "x,y" on the command line.
type Vector2 struct {
	X, Y float64
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Vector3 is a three component argument, written as "x,y,z" on the command line.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// Parameter declares one positional argument of a command.
type Parameter struct {
	Name string
	Kind ArgKind
	// Enum lists the member names accepted by a KindEnum parameter.
	Enum []string
	// Default makes the parameter optional. It must hold the Go type the
	// kind parses to (bool, int, float64, string, Vector2, Vector3, or a
	// member name for enums).
	Default interface{}
}

func Bool(name string) Parameter   { return Parameter{Name: name, Kind: KindBool} }
func Int(name string) Parameter    { return Parameter{Name: name, Kind: KindInt} }
func Float(name string) Parameter  { return Parameter{Name: name, Kind: KindFloat} }
func String(name string) Parameter { return Parameter{Name: name, Kind: KindString} }
func Vec2(name string) Parameter   { return Parameter{Name: name, Kind: KindVector2} }
func Vec3(name string) Parameter   { return Parameter{Name: name, Kind: KindVector3} }
func Enum(name string, members ...string) Parameter {
	return Parameter{Name: name, Kind: KindEnum, Enum: members}
}

// Optional returns a copy of p that falls back to def when omitted.
func (p Parameter) Optional(def interface{}) Parameter {
	p.Default = def
	return p
}

// IsOptional reports whether the parameter has a default.
func (p Parameter) IsOptional() bool {
	return p.Default != nil
}

// validDefault checks that the default matches the kind's parsed type.
func (p Parameter) validDefault() bool {
	switch p.Kind {
	case KindBool:
		_, ok := p.Default.(bool)
		return ok
	case KindInt:
		_, ok := p.Default.(int)
		return ok
	case KindFloat:
		_, ok := p.Default.(float64)
		return ok
	case KindString:
		_, ok := p.Default.(string)
		return ok
	case KindVector2:
		_, ok := p.Default.(Vector2)
		return ok
	case KindVector3:
		_, ok := p.Default.(Vector3)
		return ok
	case KindEnum:
		s, ok := p.Default.(string)
		if !ok {
			return false
		}
		_, found := matchEnum(p.Enum, s)
		return found
	}
	return false
}

// Args holds the converted arguments passed to a handler, one per declared
// parameter. The typed accessors panic on a kind mismatch, which the
// registry reports as an invocation failure.
type Args []interface{}

func (a Args) Bool(i int) bool       { return a[i].(bool) }
func (a Args) Int(i int) int         { return a[i].(int) }
func (a Args) Float(i int) float64   { return a[i].(float64) }
func (a Args) Text(i int) string     { return a[i].(string) }
func (a Args) Vector2(i int) Vector2 { return a[i].(Vector2) }
func (a Args) Vector3(i int) Vector3 { return a[i].(Vector3) }
func (a Args) Enum(i int) string     { return a[i].(string) }

// ExtractParameters splits a parameter string on spaces. Text between double
// quotes is kept as a single token with the quotes removed; a closing quote
// always ends a token, even an empty one. An unterminated quote runs to the
// end of the string. There is no escape character.
func ExtractParameters(s string) []string {
	var (
		tokens   []string
		inQuotes bool
		buf      strings.Builder
	)

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			if !inQuotes {
				tokens = append(tokens, buf.String())
				buf.Reset()
			}
		case r == ' ' && !inQuotes:
			if buf.Len() > 0 {
				tokens = append(tokens, buf.String())
				buf.Reset()
			}
		default:
			buf.WriteRune(r)
		}
	}

	if buf.Len() > 0 {
		tokens = append(tokens, buf.String())
	}
	return tokens
}

type parseFunc func(p Parameter, token string) (interface{}, error)

// parsers is the per-kind conversion table used by ConvertParameter.
var parsers = map[ArgKind]parseFunc{
	KindBool: func(_ Parameter, token string) (interface{}, error) {
		switch fold(token) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("expected true or false")
	},
	KindInt: func(_ Parameter, token string) (interface{}, error) {
		return strconv.Atoi(token)
	},
	KindFloat: func(_ Parameter, token string) (interface{}, error) {
		return strconv.ParseFloat(token, 64)
	},
	KindString: func(_ Parameter, token string) (interface{}, error) {
		return token, nil
	},
	KindVector2: func(_ Parameter, token string) (interface{}, error) {
		c, err := parseComponents(token, 2)
		if err != nil {
			return nil, err
		}
		return Vector2{X: c[0], Y: c[1]}, nil
	},
	KindVector3: func(_ Parameter, token string) (interface{}, error) {
		c, err := parseComponents(token, 3)
		if err != nil {
			return nil, err
		}
		return Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
	},
	KindEnum: func(p Parameter, token string) (interface{}, error) {
		member, ok := matchEnum(p.Enum, token)
		if !ok {
			return nil, fmt.Errorf("expected one of %s", strings.Join(p.Enum, ", "))
		}
		return member, nil
	},
}

// ConvertParameter converts a single token to the Go value for p's kind.
func ConvertParameter(p Parameter, token string) (interface{}, error) {
	parse, ok := parsers[p.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s: unsupported kind %s", ErrCoercion, p.Name, p.Kind)
	}
	v, err := parse(p, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q as %s: %v", ErrCoercion, p.Name, token, p.Kind, err)
	}
	return v, nil
}

func parseComponents(token string, n int) ([]float64, error) {
	parts := strings.Split(token, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated components, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// matchEnum finds token among members ignoring case and returns the
// declared spelling.
func matchEnum(members []string, token string) (string, bool) {
	want := fold(token)
	for _, m := range members {
		if fold(m) == want {
			return m, true
		}
	}
	return "", false
}

// fold normalizes names for case-insensitive comparison.
func fold(s string) string {
	return cases.Fold().String(s)
}
