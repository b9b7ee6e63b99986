package domain

// CardVariant controls how list entries are rendered by clients.
type CardVariant string

const (
	CardVariantFull    CardVariant = "FULL"
	CardVariantCompact CardVariant = "COMPACT"
	CardVariantMinimal CardVariant = "MINIMAL"
)

// Next cycles FULL -> COMPACT -> MINIMAL -> FULL. Unknown values reset to FULL.
func (v CardVariant) Next() CardVariant {
	switch v {
	case CardVariantFull:
		return CardVariantCompact
	case CardVariantCompact:
		return CardVariantMinimal
	case CardVariantMinimal:
		return CardVariantFull
	default:
		return CardVariantFull
	}
}

// IsValid reports whether the value is a known variant.
func (v CardVariant) IsValid() bool {
	switch v {
	case CardVariantFull, CardVariantCompact, CardVariantMinimal:
		return true
	}
	return false
}
