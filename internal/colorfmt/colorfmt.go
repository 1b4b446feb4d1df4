// Package colorfmt converts hex color codes into raylib color literals for
// several languages.
package colorfmt

import (
	"fmt"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/hammamikhairi/ottodough/internal/domain"
)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Language is a target syntax for the literal.
type Language string

const (
	Odin   Language = "Odin"
	C      Language = "C"
	Zig    Language = "Zig"
	Go     Language = "Go"
	Lua    Language = "Lua"
	CSharp Language = "C#"
	Python Language = "Python"
	Rust   Language = "Rust"
)

// Languages lists every supported target in menu order.
var Languages = []Language{Odin, C, Zig, Go, Lua, CSharp, Python, Rust}

// ParseLanguage matches a language name case-insensitively. "cs" and
// "csharp" are accepted for C#.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "cs", "csharp":
		return CSharp, nil
	}
	for _, l := range Languages {
		if strings.EqualFold(string(l), s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownLanguage, s)
}

var hexPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// ParseHex reads a six-digit hex code with or without a leading '#'.
func ParseHex(s string) (RGB, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !hexPattern.MatchString(clean) {
		return RGB{}, fmt.Errorf("%w: %q", domain.ErrInvalidHex, s)
	}
	c, err := colorful.Hex("#" + clean)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %v", domain.ErrInvalidHex, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Format renders the color literal for lang. With a non-empty name the
// literal is wrapped in that language's constant declaration.
func Format(lang Language, c RGB, alpha uint8, name string) (string, error) {
	var value string
	switch lang {
	case Odin:
		value = fmt.Sprintf("rl.Color{%d, %d, %d, %d}", c.R, c.G, c.B, alpha)
	case C:
		value = fmt.Sprintf("(Color){ %d, %d, %d, %d }", c.R, c.G, c.B, alpha)
	case Zig:
		value = fmt.Sprintf("rl.Color{ .r = %d, .g = %d, .b = %d, .a = %d }", c.R, c.G, c.B, alpha)
	case Go:
		value = fmt.Sprintf("rl.NewColor(%d, %d, %d, %d)", c.R, c.G, c.B, alpha)
	case Lua:
		value = fmt.Sprintf("{ r = %d, g = %d, b = %d, a = %d }", c.R, c.G, c.B, alpha)
	case CSharp:
		value = fmt.Sprintf("new Color(%d, %d, %d, %d)", c.R, c.G, c.B, alpha)
	case Python:
		value = fmt.Sprintf("Color(%d, %d, %d, %d)", c.R, c.G, c.B, alpha)
	case Rust:
		value = fmt.Sprintf("Color { r: %d, g: %d, b: %d, a: %d }", c.R, c.G, c.B, alpha)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownLanguage, lang)
	}

	if name == "" {
		return value, nil
	}

	switch lang {
	case Odin:
		return fmt.Sprintf("%s :: %s", name, value), nil
	case C:
		return fmt.Sprintf("#define %s %s", name, value), nil
	case Zig:
		return fmt.Sprintf("const %s = %s;", name, value), nil
	case Go:
		return fmt.Sprintf("const %s = %s", name, value), nil
	case Lua:
		return fmt.Sprintf("local %s = %s", name, value), nil
	case CSharp:
		return fmt.Sprintf("public const Color %s = %s;", name, value), nil
	case Python:
		return fmt.Sprintf("%s = %s", name, value), nil
	default: // Rust
		return fmt.Sprintf("const %s: Color = %s;", name, value), nil
	}
}

// Convert parses hex and formats it in one step.
func Convert(hex string, lang Language, alpha uint8, name string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return Format(lang, c, alpha, name)
}

// Example is a named sample color.
type Example struct {
	Name string
	Hex  string
}

// Examples are the raylib brand colors offered as starting points.
var Examples = []Example{
	{"Raylib Purple", "#7817ff"},
	{"Raylib Red", "#e62937"},
	{"Raylib Orange", "#ff7700"},
	{"Raylib Yellow", "#ffcc00"},
	{"Raylib Green", "#00cc44"},
	{"Raylib Blue", "#0088ff"},
}
