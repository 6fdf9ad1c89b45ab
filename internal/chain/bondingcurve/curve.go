// Package bondingcurve implements chain.CurveTrader over JSON-RPC. Trades
// run simulate → (approve) → submit → wait-for-receipt, bounded by a
// slippage discount on the simulated output and a fixed deadline window.
package bondingcurve

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/pumpscope/pumpscope/internal/chain"
)

const defaultDeadlineWindow = 5 * time.Minute

// maxUint256 is the unlimited-approval amount.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Trader implements chain.CurveTrader against a single EVM chain. A Trader
// without a signer can read and simulate but rejects Buy/Sell.
type Trader struct {
	client         *ethclient.Client
	curveABI       abi.ABI
	erc20ABI       abi.ABI
	key            *ecdsa.PrivateKey
	chainID        *big.Int
	deadlineWindow time.Duration
	log            *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

var _ chain.CurveTrader = (*Trader)(nil)

// NewTrader dials rpcURL and prepares the contract bindings. privateKeyHex
// may be empty for a read-only trader.
func NewTrader(rpcURL, privateKeyHex string, chainID int64, deadlineWindow time.Duration, log *slog.Logger) (*Trader, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc %s: %w", rpcURL, err)
	}

	curveABI, err := abi.JSON(strings.NewReader(curveABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse curve abi: %w", err)
	}
	erc20ABI, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	var key *ecdsa.PrivateKey
	if privateKeyHex != "" {
		key, err = crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
	}

	if deadlineWindow <= 0 {
		deadlineWindow = defaultDeadlineWindow
	}

	return &Trader{
		client:         client,
		curveABI:       curveABI,
		erc20ABI:       erc20ABI,
		key:            key,
		chainID:        big.NewInt(chainID),
		deadlineWindow: deadlineWindow,
		log:            log,
		inFlight:       make(map[string]bool),
	}, nil
}

// State implements chain.CurveTrader.
func (t *Trader) State(ctx context.Context, curve common.Address) (*chain.CurveState, error) {
	state := &chain.CurveState{}

	reads := []struct {
		method string
		out    interface{}
	}{
		{"graduated", &state.Graduated},
		{"currentPrice", &state.CurrentPrice},
		{"ethBalance", &state.ETHBalance},
		{"tokenBalance", &state.TokenBalance},
		{"token", &state.Token},
		{"GRADUATION_ETH", &state.GraduationETH},
		{"MAX_SUPPLY", &state.MaxSupply},
	}
	for _, r := range reads {
		vals, err := t.callCurve(ctx, curve, r.method)
		if err != nil {
			return nil, err
		}
		if err := assign(r.out, vals[0]); err != nil {
			return nil, fmt.Errorf("read %s: %w", r.method, err)
		}
	}

	state.Progress = progressFromBalances(state.ETHBalance, state.GraduationETH)
	return state, nil
}

// SimulateBuy implements chain.CurveTrader.
func (t *Trader) SimulateBuy(ctx context.Context, curve common.Address, ethIn *big.Int) (*chain.BuySimulation, error) {
	vals, err := t.callCurve(ctx, curve, "simulateBuy", ethIn)
	if err != nil {
		return nil, err
	}

	sim := &chain.BuySimulation{}
	if err := assign(&sim.ETHToUse, vals[0]); err != nil {
		return nil, err
	}
	if err := assign(&sim.TokensOut, vals[1]); err != nil {
		return nil, err
	}
	if err := assign(&sim.Refund, vals[2]); err != nil {
		return nil, err
	}
	if err := assign(&sim.WillGraduate, vals[3]); err != nil {
		return nil, err
	}
	return sim, nil
}

// SimulateSell implements chain.CurveTrader.
func (t *Trader) SimulateSell(ctx context.Context, curve common.Address, tokenIn *big.Int) (*big.Int, error) {
	vals, err := t.callCurve(ctx, curve, "simulateSell", tokenIn)
	if err != nil {
		return nil, err
	}

	var out *big.Int
	if err := assign(&out, vals[0]); err != nil {
		return nil, err
	}
	return out, nil
}

// Buy implements chain.CurveTrader.
func (t *Trader) Buy(ctx context.Context, curve common.Address, ethIn *big.Int, slippageBps int64) (common.Hash, error) {
	release, err := t.acquire("buy")
	if err != nil {
		return common.Hash{}, err
	}
	defer release()

	if t.key == nil {
		return common.Hash{}, chain.ErrNoSigner
	}
	if err := validateBps(slippageBps); err != nil {
		return common.Hash{}, err
	}

	vals, err := t.callCurve(ctx, curve, "graduated")
	if err != nil {
		return common.Hash{}, err
	}
	if graduated, _ := vals[0].(bool); graduated {
		return common.Hash{}, chain.ErrGraduated
	}

	sim, err := t.SimulateBuy(ctx, curve, ethIn)
	if err != nil {
		return common.Hash{}, fmt.Errorf("simulate buy: %w", err)
	}
	if sim.TokensOut == nil || sim.TokensOut.Sign() == 0 {
		return common.Hash{}, fmt.Errorf("%w: buy amount may be too small or the curve fully sold", chain.ErrZeroOutput)
	}

	minTokens := applySlippage(sim.TokensOut, slippageBps)
	if minTokens.Sign() == 0 {
		return common.Hash{}, fmt.Errorf("%w: minTokensOut is zero after slippage", chain.ErrZeroOutput)
	}

	data, err := t.curveABI.Pack("buy", minTokens, t.deadline())
	if err != nil {
		return common.Hash{}, fmt.Errorf("pack buy: %w", err)
	}

	t.log.Info("submitting buy", "curve", curve, "ethIn", ethIn, "minTokens", minTokens, "slippageBps", slippageBps)
	return t.submit(ctx, curve, ethIn, data)
}

// Sell implements chain.CurveTrader.
func (t *Trader) Sell(ctx context.Context, curve common.Address, tokenIn *big.Int, slippageBps int64) (common.Hash, error) {
	release, err := t.acquire("sell")
	if err != nil {
		return common.Hash{}, err
	}
	defer release()

	if t.key == nil {
		return common.Hash{}, chain.ErrNoSigner
	}
	if err := validateBps(slippageBps); err != nil {
		return common.Hash{}, err
	}

	vals, err := t.callCurve(ctx, curve, "token")
	if err != nil {
		return common.Hash{}, err
	}
	var token common.Address
	if err := assign(&token, vals[0]); err != nil {
		return common.Hash{}, err
	}

	if err := t.ensureAllowance(ctx, token, curve, tokenIn); err != nil {
		return common.Hash{}, err
	}

	ethOut, err := t.SimulateSell(ctx, curve, tokenIn)
	if err != nil {
		return common.Hash{}, fmt.Errorf("simulate sell: %w", err)
	}
	if ethOut == nil || ethOut.Sign() == 0 {
		return common.Hash{}, fmt.Errorf("%w: sell amount may be invalid", chain.ErrZeroOutput)
	}

	minEthOut := applySlippage(ethOut, slippageBps)
	if minEthOut.Sign() == 0 {
		return common.Hash{}, fmt.Errorf("%w: minEthOut is zero after slippage", chain.ErrZeroOutput)
	}

	data, err := t.curveABI.Pack("sell", tokenIn, minEthOut, t.deadline())
	if err != nil {
		return common.Hash{}, fmt.Errorf("pack sell: %w", err)
	}

	t.log.Info("submitting sell", "curve", curve, "tokenIn", tokenIn, "minEthOut", minEthOut, "slippageBps", slippageBps)
	return t.submit(ctx, curve, nil, data)
}

// ensureAllowance approves the curve for an unlimited amount when the
// current allowance cannot cover tokenIn, and waits for the approval to
// mine before returning.
func (t *Trader) ensureAllowance(ctx context.Context, token, curve common.Address, tokenIn *big.Int) error {
	owner := crypto.PubkeyToAddress(t.key.PublicKey)

	data, err := t.erc20ABI.Pack("allowance", owner, curve)
	if err != nil {
		return fmt.Errorf("pack allowance: %w", err)
	}
	res, err := t.client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return fmt.Errorf("read allowance: %w", err)
	}
	vals, err := t.erc20ABI.Unpack("allowance", res)
	if err != nil {
		return fmt.Errorf("decode allowance: %w", err)
	}
	var allowance *big.Int
	if err := assign(&allowance, vals[0]); err != nil {
		return err
	}

	if allowance.Cmp(tokenIn) >= 0 {
		return nil
	}

	approveData, err := t.erc20ABI.Pack("approve", curve, maxUint256)
	if err != nil {
		return fmt.Errorf("pack approve: %w", err)
	}

	t.log.Info("approving curve", "token", token, "curve", curve)
	if _, err := t.submit(ctx, token, nil, approveData); err != nil {
		return fmt.Errorf("approve: %w", err)
	}
	return nil
}

// submit signs, sends and waits for one transaction, failing on revert.
func (t *Trader) submit(ctx context.Context, to common.Address, value *big.Int, data []byte) (common.Hash, error) {
	from := crypto.PubkeyToAddress(t.key.PublicKey)

	nonce, err := t.client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pending nonce: %w", err)
	}
	gasPrice, err := t.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("gas price: %w", err)
	}
	gasLimit, err := t.client.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Value: value, Data: data})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
	}

	tx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(t.chainID), t.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign tx: %w", err)
	}

	if err := t.client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("send tx: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, t.client, signed)
	if err != nil {
		return common.Hash{}, fmt.Errorf("wait for tx %s: %w", signed.Hash(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return common.Hash{}, fmt.Errorf("tx %s reverted", signed.Hash())
	}

	t.log.Info("tx confirmed", "hash", signed.Hash(), "block", receipt.BlockNumber)
	return signed.Hash(), nil
}

// callCurve packs, calls and unpacks one read-only curve method.
func (t *Trader) callCurve(ctx context.Context, curve common.Address, method string, args ...interface{}) ([]interface{}, error) {
	data, err := t.curveABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	res, err := t.client.CallContract(ctx, ethereum.CallMsg{To: &curve, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	vals, err := t.curveABI.Unpack(method, res)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", method, err)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("call %s: empty return", method)
	}
	return vals, nil
}

// acquire marks action as in flight, rejecting re-entry until the returned
// release runs. This is what stops a double-submitted buy or sell.
func (t *Trader) acquire(action string) (func(), error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inFlight[action] {
		return nil, fmt.Errorf("%w: %s", chain.ErrTradeInFlight, action)
	}
	t.inFlight[action] = true

	return func() {
		t.mu.Lock()
		delete(t.inFlight, action)
		t.mu.Unlock()
	}, nil
}

// deadline is the transaction validity bound: now plus the configured
// window.
func (t *Trader) deadline() *big.Int {
	return big.NewInt(time.Now().Add(t.deadlineWindow).Unix())
}

// applySlippage discounts a simulated output by slippageBps basis points.
func applySlippage(out *big.Int, slippageBps int64) *big.Int {
	discounted := new(big.Int).Mul(out, big.NewInt(10000-slippageBps))
	return discounted.Div(discounted, big.NewInt(10000))
}

func validateBps(bps int64) error {
	if bps < 0 || bps > 10000 {
		return fmt.Errorf("slippage %d bps out of range [0,10000]", bps)
	}
	return nil
}

// progressFromBalances computes graduation progress in percent with two
// decimal places of resolution, capped at 100.
func progressFromBalances(ethBalance, graduationETH *big.Int) float64 {
	if ethBalance == nil || graduationETH == nil || graduationETH.Sign() <= 0 {
		return 0
	}

	bps := new(big.Int).Mul(ethBalance, big.NewInt(10000))
	bps.Div(bps, graduationETH)
	if bps.Cmp(big.NewInt(10000)) > 0 {
		return 100
	}

	return float64(bps.Int64()) / 100
}

// assign copies an ABI return value into a typed destination.
func assign(dst, val interface{}) error {
	switch d := dst.(type) {
	case *bool:
		v, ok := val.(bool)
		if !ok {
			return fmt.Errorf("unexpected return type %T, want bool", val)
		}
		*d = v
	case **big.Int:
		v, ok := val.(*big.Int)
		if !ok {
			return fmt.Errorf("unexpected return type %T, want *big.Int", val)
		}
		*d = v
	case *common.Address:
		v, ok := val.(common.Address)
		if !ok {
			return fmt.Errorf("unexpected return type %T, want address", val)
		}
		*d = v
	default:
		return fmt.Errorf("unsupported destination type %T", dst)
	}
	return nil
}
