package bom

import "strings"

// DefaultAssemblyPrefixes are the IPN prefixes that historically marked a
// part as an assembly. The catalog's is_assembly flag is authoritative; the
// prefix rule only covers records imported before the flag existed.
var DefaultAssemblyPrefixes = []string{"ASY-", "PCA-"}

// AssemblyPredicate decides whether an IPN names an assembly, i.e. whether a
// BOM fetch makes sense for it at all.
type AssemblyPredicate func(ipn string) bool

// PrefixPredicate builds a predicate from a configurable prefix list.
// Matching is case-insensitive. An empty list falls back to the defaults.
func PrefixPredicate(prefixes ...string) AssemblyPredicate {
	if len(prefixes) == 0 {
		prefixes = DefaultAssemblyPrefixes
	}
	upper := make([]string, len(prefixes))
	for i, p := range prefixes {
		upper[i] = strings.ToUpper(p)
	}
	return func(ipn string) bool {
		u := strings.ToUpper(ipn)
		for _, p := range upper {
			if strings.HasPrefix(u, p) {
				return true
			}
		}
		return false
	}
}
