package bondingcurve

// ABI fragments for the launch site's bonding-curve contract and its ERC20
// token, limited to the calls the trader makes.
const curveABIJSON = `[
	{"name":"buy","type":"function","stateMutability":"payable",
	 "inputs":[{"name":"minTokensOut","type":"uint256"},{"name":"deadline","type":"uint256"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"name":"sell","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"tokenAmount","type":"uint256"},{"name":"minEthOut","type":"uint256"},{"name":"deadline","type":"uint256"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"name":"simulateBuy","type":"function","stateMutability":"view",
	 "inputs":[{"name":"ethAmount","type":"uint256"}],
	 "outputs":[{"name":"ethToUse","type":"uint256"},{"name":"tokensOut","type":"uint256"},{"name":"refundAmount","type":"uint256"},{"name":"willGraduate","type":"bool"}]},
	{"name":"simulateSell","type":"function","stateMutability":"view",
	 "inputs":[{"name":"tokenAmount","type":"uint256"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"name":"graduated","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"bool"}]},
	{"name":"currentPrice","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"ethBalance","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"tokenBalance","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"token","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"name":"GRADUATION_ETH","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"MAX_SUPPLY","type":"function","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const erc20ABIJSON = `[
	{"name":"balanceOf","type":"function","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"name":"allowance","type":"function","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"name":"approve","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]}
]`
