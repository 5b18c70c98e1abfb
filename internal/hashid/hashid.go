// Package hashid derives stable node identities from canonical type names.
package hashid

import "github.com/cespare/xxhash/v2"

// Sum hashes a canonical type name. The same name always yields the same
// identity, across graphs and across processes.
func Sum(typeName string) uint64 {
	return xxhash.Sum64String(typeName)
}
