package builder

import (
	"fmt"

	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/parser"

	"github.com/antlr4-go/antlr/v4"
)

var modifierBits = map[int]int{
	parser.KW_STATIC:       ast.AccStatic,
	parser.KW_ABSTRACT:     ast.AccAbstract,
	parser.KW_FINAL:        ast.AccFinal,
	parser.KW_NATIVE:       ast.AccNative,
	parser.KW_SYNCHRONIZED: ast.AccSynchronized,
	parser.KW_TRANSIENT:    ast.AccTransient,
	parser.KW_VOLATILE:     ast.AccVolatile,
	parser.KW_STRICTFP:     ast.AccStrict,
}

func visibilityBit(text string) int {
	switch text {
	case "public":
		return ast.AccPublic
	case "protected":
		return ast.AccProtected
	case "private":
		return ast.AccPrivate
	}
	return 0
}

// resolveModifiers folds modifier tokens into a mask. A repeated modifier
// or a second visibility keyword is reported and otherwise ignored, so the
// first visibility wins. defaultVisibility is applied when no visibility
// was written.
func (b *astBuilder) resolveModifiers(tokens []antlr.Token, defaultVisibility int) (mods int, hasVisibility bool) {
	for _, t := range tokens {
		if t.GetTokenType() == parser.VISIBILITY_MODIFIER {
			if hasVisibility {
				b.reportAt(t, fmt.Sprintf("Cannot specify modifier: %s when access scope has already been defined", t.GetText()))
				continue
			}
			mods |= visibilityBit(t.GetText())
			hasVisibility = true
			continue
		}
		bit, ok := modifierBits[t.GetTokenType()]
		if !ok {
			continue
		}
		if mods&bit != 0 {
			b.reportAt(t, fmt.Sprintf("Cannot repeat modifier: %s", t.GetText()))
			continue
		}
		mods |= bit
	}
	if !hasVisibility {
		mods |= defaultVisibility
	}
	return mods, hasVisibility
}

// classModifiers resolves class modifiers. A class written without a
// visibility is public and flagged as synthetically so.
func (b *astBuilder) classModifiers(tokens []antlr.Token) (mods int, syntheticPublic bool) {
	mods, _ = b.resolveModifiers(tokens, ast.AccPublic|ast.AccSynthetic)
	syntheticPublic = mods&ast.AccSynthetic != 0
	return mods &^ ast.AccSynthetic, syntheticPublic
}

// isSyntheticPublic decides whether a method without a visibility keyword
// counts as implicitly public. The checks run in order.
func isSyntheticPublic(hasVisibility, isAnnotationMember, hasModifierOrAnnotation, hasReturnType, hasDef bool) bool {
	switch {
	case hasVisibility:
		return false
	case isAnnotationMember:
		return true
	case hasDef && hasReturnType:
		return true
	case hasModifierOrAnnotation || !hasReturnType:
		return true
	}
	return false
}

func hasModifier(tokens []antlr.Token, ttype int) bool {
	for _, t := range tokens {
		if t.GetTokenType() == ttype {
			return true
		}
	}
	return false
}
