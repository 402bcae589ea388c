package translation

import (
	"fmt"
	"strings"
)

// Variant selects the upstream endpoint shape and the response grammar used
// to parse its body.
type Variant int

const (
	// Classic targets translate_a/single. Its body is a nested array blob
	// that is read by splitting on double quotes.
	Classic Variant = iota
	// Compact targets translate_a/t. Its body is a plain JSON array.
	Compact
)

const (
	classicEndpoint = "https://translate.google.com/translate_a/single"
	compactEndpoint = "https://translate.google.com/translate_a/t"

	classicClient = "gtx"
	compactClient = "p"

	// DstTarget is the protocol fixed value of the dt parameter.
	DstTarget = "t"
)

// Endpoint returns the default base URL for the variant.
func (v Variant) Endpoint() string {
	if v == Compact {
		return compactEndpoint
	}
	return classicEndpoint
}

// DefaultClient returns the client tag the upstream expects for the variant.
func (v Variant) DefaultClient() string {
	if v == Compact {
		return compactClient
	}
	return classicClient
}

func (v Variant) String() string {
	switch v {
	case Classic:
		return "classic"
	case Compact:
		return "compact"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant maps a user supplied name to a Variant. The endpoint path
// names ("single", "t") are accepted as aliases.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "classic", "single":
		return Classic, nil
	case "compact", "t":
		return Compact, nil
	default:
		return Classic, fmt.Errorf("unknown variant %q (want classic or compact)", name)
	}
}
