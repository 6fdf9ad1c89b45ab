package chain

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseEther converts a decimal ETH/token amount ("0.05") to wei. Both the
// curve and its token use 18 decimals.
func ParseEther(s string) (*big.Int, error) {
	return ParseUnits(s, 18)
}

// ParseUnits converts a decimal string to an integer amount with the given
// number of decimals, rejecting anything that does not fit exactly.
func ParseUnits(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "/eE") {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if r.Sign() < 0 {
		return nil, fmt.Errorf("amount %q is negative", s)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	if !r.IsInt() {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", s, decimals)
	}

	return new(big.Int).Set(r.Num()), nil
}
