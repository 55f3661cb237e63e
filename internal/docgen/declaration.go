package docgen

import (
	"context"
	"strings"
)

// PlaceholderDeclaration is rendered when no props declaration was found.
const PlaceholderDeclaration = "// No explicit Props type found"

// genericPropsAlias is the variant-props helper type that ends in "Props"
// but never describes a module's own props.
const genericPropsAlias = "VariantProps"

// DeclarationSource produces the props declaration of a module. Callers do
// not know which backend produced the text; DeclarationInfo.Kind records it.
type DeclarationSource interface {
	// Prepare is called once with every resolved module before lookups.
	Prepare(ctx context.Context, records []ModuleRecord) error
	Declaration(rec ModuleRecord) DeclarationInfo
}

func placeholder() DeclarationInfo {
	return DeclarationInfo{Text: PlaceholderDeclaration, Kind: DeclarationNone}
}

// isPropsName reports whether name follows the props naming convention.
func isPropsName(name string) bool {
	return strings.HasSuffix(name, "Props") && name != genericPropsAlias
}
