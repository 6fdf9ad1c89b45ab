package bondingcurve

import (
	"io"
	"log/slog"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pumpscope/pumpscope/internal/chain"
)

func newBareTrader(t *testing.T) *Trader {
	t.Helper()

	curveABI, err := abi.JSON(strings.NewReader(curveABIJSON))
	require.NoError(t, err)
	erc20ABI, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	require.NoError(t, err)

	return &Trader{
		curveABI:       curveABI,
		erc20ABI:       erc20ABI,
		chainID:        big.NewInt(8453),
		deadlineWindow: 5 * time.Minute,
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		inFlight:       make(map[string]bool),
	}
}

func TestApplySlippage(t *testing.T) {
	tests := []struct {
		name string
		out  int64
		bps  int64
		want int64
	}{
		{
			name: "one percent",
			out:  1000,
			bps:  100,
			want: 990,
		},
		{
			name: "zero slippage",
			out:  1000,
			bps:  0,
			want: 1000,
		},
		{
			name: "full slippage",
			out:  1000,
			bps:  10000,
			want: 0,
		},
		{
			name: "rounds down",
			out:  3,
			bps:  100,
			want: 2,
		},
		{
			name: "tiny output collapses to zero",
			out:  1,
			bps:  1,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applySlippage(big.NewInt(tt.out), tt.bps)
			assert.Zero(t, big.NewInt(tt.want).Cmp(got))
		})
	}
}

func TestApplySlippageLargeOutput(t *testing.T) {
	// 1e24 tokens, 250 bps: must not lose precision to float math.
	out, _ := new(big.Int).SetString("1000000000000000000000000", 10)
	want, _ := new(big.Int).SetString("975000000000000000000000", 10)

	assert.Zero(t, want.Cmp(applySlippage(out, 250)))
}

func TestValidateBps(t *testing.T) {
	assert.NoError(t, validateBps(0))
	assert.NoError(t, validateBps(100))
	assert.NoError(t, validateBps(10000))
	assert.Error(t, validateBps(-1))
	assert.Error(t, validateBps(10001))
}

func TestProgressFromBalances(t *testing.T) {
	eth := func(s string) *big.Int {
		v, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)
		return v
	}

	tests := []struct {
		name       string
		balance    *big.Int
		graduation *big.Int
		want       float64
	}{
		{
			name:       "halfway",
			balance:    eth("500000000000000000"),
			graduation: eth("1000000000000000000"),
			want:       50,
		},
		{
			name:       "fractional",
			balance:    eth("123400000000000000"),
			graduation: eth("1000000000000000000"),
			want:       12.34,
		},
		{
			name:       "overfunded caps at 100",
			balance:    eth("2000000000000000000"),
			graduation: eth("1000000000000000000"),
			want:       100,
		},
		{
			name:       "zero graduation target",
			balance:    eth("1000000000000000000"),
			graduation: big.NewInt(0),
			want:       0,
		},
		{
			name:       "nil balances",
			balance:    nil,
			graduation: nil,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progressFromBalances(tt.balance, tt.graduation))
		})
	}
}

func TestTraderInFlightGuard(t *testing.T) {
	tr := newBareTrader(t)

	release, err := tr.acquire("buy")
	require.NoError(t, err)

	// Re-entry on the same action is rejected until release.
	_, err = tr.acquire("buy")
	assert.ErrorIs(t, err, chain.ErrTradeInFlight)

	// A different action type is independent.
	releaseSell, err := tr.acquire("sell")
	require.NoError(t, err)
	releaseSell()

	release()
	release2, err := tr.acquire("buy")
	require.NoError(t, err)
	release2()
}

func TestTraderDeadlineWindow(t *testing.T) {
	tr := newBareTrader(t)

	before := time.Now().Add(tr.deadlineWindow).Unix()
	deadline := tr.deadline().Int64()
	after := time.Now().Add(tr.deadlineWindow).Unix()

	assert.GreaterOrEqual(t, deadline, before)
	assert.LessOrEqual(t, deadline, after)
}

func TestMaxUint256(t *testing.T) {
	want, ok := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	require.True(t, ok)
	assert.Zero(t, want.Cmp(maxUint256))
}

func TestCurveABIPacksTradeCalls(t *testing.T) {
	tr := newBareTrader(t)

	buy, err := tr.curveABI.Pack("buy", big.NewInt(1), big.NewInt(2))
	require.NoError(t, err)
	assert.Len(t, buy, 4+2*32)

	sell, err := tr.curveABI.Pack("sell", big.NewInt(1), big.NewInt(2), big.NewInt(3))
	require.NoError(t, err)
	assert.Len(t, sell, 4+3*32)

	approve, err := tr.erc20ABI.Pack("approve", ethcommon.HexToAddress("0x1"), maxUint256)
	require.NoError(t, err)
	assert.Len(t, approve, 4+2*32)
}
