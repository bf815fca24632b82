package core

// account.go implements Account Derivation (spec.md §4.C): a deterministic,
// collision-free sub-account per pool index, derived from a fixed
// module tag. The real system derives this from the host's account-id
// scheme (out of scope, spec.md §1); here it is a plain hash, which is all
// invariant 5 ("collision-free across pools") actually requires given
// injectivity of pool_id.

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// ModuleTag is the fixed 8-byte tag fed into sub-account derivation
// (spec.md §6 "Fixed constants").
var ModuleTag = [8]byte{'z', 'l', 'k', '_', 'd', 'e', 'x', '1'}

// AccountDeriver derives deterministic pool-holding accounts.
type AccountDeriver interface {
	SubAccount(tag [8]byte, poolID PoolID) Address
}

// Blake2bDeriver hashes (tag || big-endian pool id) into a 32-byte address.
// Distinct pool ids always hash to distinct addresses since blake2b-256 is
// collision-resistant and the pre-image is injective in poolID.
type Blake2bDeriver struct{}

func (Blake2bDeriver) SubAccount(tag [8]byte, poolID PoolID) Address {
	var buf [16]byte
	copy(buf[:8], tag[:])
	binary.BigEndian.PutUint64(buf[8:], uint64(poolID))
	sum := blake2b.Sum256(buf[:])
	var a Address
	copy(a[:], sum[:])
	return a
}

// SubAccount derives the deterministic pool account for poolID under the
// module's fixed tag, using the default Blake2bDeriver.
func SubAccount(poolID PoolID) Address {
	return Blake2bDeriver{}.SubAccount(ModuleTag, poolID)
}
