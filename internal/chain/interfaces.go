package chain

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CurveState is a point-in-time read of a bonding-curve contract. Progress
// is the deposit fraction toward graduation in percent, capped at 100.
type CurveState struct {
	Graduated     bool           `json:"graduated"`
	CurrentPrice  *big.Int       `json:"currentPrice"`
	ETHBalance    *big.Int       `json:"ethBalance"`
	TokenBalance  *big.Int       `json:"tokenBalance"`
	Token         common.Address `json:"token"`
	GraduationETH *big.Int       `json:"graduationEth"`
	MaxSupply     *big.Int       `json:"maxSupply"`
	Progress      float64        `json:"progress"`
}

// BuySimulation mirrors the curve's simulateBuy return values.
type BuySimulation struct {
	ETHToUse     *big.Int `json:"ethToUse"`
	TokensOut    *big.Int `json:"tokensOut"`
	Refund       *big.Int `json:"refundAmount"`
	WillGraduate bool     `json:"willGraduate"`
}

// CurveTrader reads and trades against a bonding-curve contract, keyed per
// call by the curve address. State-changing calls bound execution with a
// basis-points slippage discount on the simulated output and a fixed
// validity window, and reject concurrent re-entry per action type.
type CurveTrader interface {
	// State reads the curve's full public state.
	State(ctx context.Context, curve common.Address) (*CurveState, error)

	// SimulateBuy projects the output of spending ethIn wei.
	SimulateBuy(ctx context.Context, curve common.Address, ethIn *big.Int) (*BuySimulation, error)

	// SimulateSell projects the wei received for selling tokenIn tokens.
	SimulateSell(ctx context.Context, curve common.Address, tokenIn *big.Int) (*big.Int, error)

	// Buy spends ethIn wei and waits for on-chain confirmation.
	Buy(ctx context.Context, curve common.Address, ethIn *big.Int, slippageBps int64) (common.Hash, error)

	// Sell sells tokenIn tokens, approving the curve first when the current
	// allowance is insufficient, and waits for confirmation.
	Sell(ctx context.Context, curve common.Address, tokenIn *big.Int, slippageBps int64) (common.Hash, error)
}

var (
	// ErrTradeInFlight rejects a buy or sell while the previous call of the
	// same action type has not resolved.
	ErrTradeInFlight = errors.New("trade already in flight")

	// ErrGraduated marks a curve whose trading moved to the DEX.
	ErrGraduated = errors.New("curve has graduated, trade on the DEX instead")

	// ErrZeroOutput marks a simulation that projected no output, before or
	// after the slippage discount.
	ErrZeroOutput = errors.New("simulation returned zero output")

	// ErrNoSigner marks a trader constructed without a private key.
	ErrNoSigner = errors.New("no signer configured")
)
