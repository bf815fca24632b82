package main

import (
	"fmt"
	"strconv"

	"zlkdex/core"
)

func parseAddr(s string) (core.Address, error) {
	a, err := core.AddressFromString(s)
	if err != nil {
		return a, fmt.Errorf("address: %w", err)
	}
	return a, nil
}

func parseUint64(name, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer: %w", name, err)
	}
	return v, nil
}

func parseAssetID(s string) (core.AssetID, error) {
	v, err := parseUint64("asset_id", s)
	return core.AssetID(v), err
}

func parsePoolID(s string) (core.PoolID, error) {
	v, err := parseUint64("pool_id", s)
	return core.PoolID(v), err
}

func parseBool(name, s string) (bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false: %w", name, err)
	}
	return v, nil
}

// signedOrigin builds a signed Origin for caller. dexcli has no real
// signature scheme to check — the CLI operator is trusted the way the
// teacher's CLI trusts whatever address it is pointed at.
func signedOrigin(caller core.Address) core.Origin { return core.Signed(caller) }
