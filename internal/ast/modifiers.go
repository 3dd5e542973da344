package ast

import "strings"

// Modifier bits, using the JVM access flag values.
const (
	AccPublic       = 0x0001
	AccPrivate      = 0x0002
	AccProtected    = 0x0004
	AccStatic       = 0x0008
	AccFinal        = 0x0010
	AccSynchronized = 0x0020
	AccVolatile     = 0x0040
	AccTransient    = 0x0080
	AccNative       = 0x0100
	AccInterface    = 0x0200
	AccAbstract     = 0x0400
	AccStrict       = 0x0800
	AccSynthetic    = 0x1000
	AccAnnotation   = 0x2000
	AccEnum         = 0x4000
)

// AccVisibility covers the three visibility bits.
const AccVisibility = AccPublic | AccPrivate | AccProtected

var modifierNames = []struct {
	bit  int
	name string
}{
	{AccPublic, "public"},
	{AccPrivate, "private"},
	{AccProtected, "protected"},
	{AccAbstract, "abstract"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccTransient, "transient"},
	{AccVolatile, "volatile"},
	{AccSynchronized, "synchronized"},
	{AccNative, "native"},
	{AccStrict, "strictfp"},
	{AccInterface, "interface"},
	{AccAnnotation, "annotation"},
	{AccEnum, "enum"},
	{AccSynthetic, "synthetic"},
}

// ModifierString renders a modifier mask in declaration order.
func ModifierString(mods int) string {
	var parts []string
	for _, m := range modifierNames {
		if mods&m.bit != 0 {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(parts, " ")
}
