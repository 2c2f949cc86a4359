package market

// PhaseParams parameterizes the stochastic price model for one phase.
// Mean and Sigma are daily log-return drift and volatility; DurationMin
// and DurationMax bound the phase length in days.
type PhaseParams struct {
	Mean        float64
	Sigma       float64
	DurationMin float64
	DurationMax float64
}

// PhaseParamsFor returns the model parameters for a phase. Lookups are by
// the current phase only; there is no interpolation across boundaries.
func PhaseParamsFor(p Phase) PhaseParams {
	switch p {
	case PhaseBullRun:
		return PhaseParams{Mean: 0.005, Sigma: 0.018, DurationMin: 45, DurationMax: 90}
	case PhaseDistribution:
		return PhaseParams{Mean: 0.000, Sigma: 0.025, DurationMin: 20, DurationMax: 45}
	case PhaseBearMarket:
		return PhaseParams{Mean: -0.004, Sigma: 0.02, DurationMin: 60, DurationMax: 120}
	default: // accumulation
		return PhaseParams{Mean: 0.001, Sigma: 0.01, DurationMin: 30, DurationMax: 60}
	}
}

// CoinProfile carries the per-asset parameters of the correlated model.
type CoinProfile struct {
	Beta            float64
	MaxDailyMove    float64
	ParabolicFactor float64
}

var coinProfiles = map[string]CoinProfile{
	"BTC":  {Beta: 1.0, MaxDailyMove: 0.08, ParabolicFactor: 1.0},
	"ETH":  {Beta: 1.3, MaxDailyMove: 0.12, ParabolicFactor: 1.2},
	"SOL":  {Beta: 1.8, MaxDailyMove: 0.18, ParabolicFactor: 1.4},
	"DOGE": {Beta: 2.3, MaxDailyMove: 0.25, ParabolicFactor: 1.6},
	"PEPE": {Beta: 3.0, MaxDailyMove: 0.35, ParabolicFactor: 2.0},
}

var tagProfiles = map[VolatilityTag]CoinProfile{
	TagBTC:      {Beta: 1.0, MaxDailyMove: 0.08, ParabolicFactor: 1.0},
	TagBigAlt:   {Beta: 1.5, MaxDailyMove: 0.15, ParabolicFactor: 1.3},
	TagSmallAlt: {Beta: 2.3, MaxDailyMove: 0.25, ParabolicFactor: 1.6},
	TagMeme:     {Beta: 3.0, MaxDailyMove: 0.35, ParabolicFactor: 2.0},
}

// ProfileFor resolves a coin's model profile by symbol, falling back to its
// volatility tag and finally to the BTC profile.
func ProfileFor(c *Coin) CoinProfile {
	if p, ok := coinProfiles[c.Symbol]; ok {
		return p
	}
	if p, ok := tagProfiles[c.Tag]; ok {
		return p
	}
	return coinProfiles["BTC"]
}

// LiquidityProfile shapes the synthetic depth curve of a coin's book.
type LiquidityProfile struct {
	BaseDepth   float64 // USD depth at best bid/ask
	DecayFactor float64 // higher = thinner book away from mid
}

var liquidityProfiles = map[string]LiquidityProfile{
	"BTC":  {BaseDepth: 150_000_000, DecayFactor: 0.10},
	"ETH":  {BaseDepth: 80_000_000, DecayFactor: 0.12},
	"SOL":  {BaseDepth: 30_000_000, DecayFactor: 0.18},
	"DOGE": {BaseDepth: 15_000_000, DecayFactor: 0.20},
	"PEPE": {BaseDepth: 5_000_000, DecayFactor: 0.25},
}

// LiquidityProfileFor resolves a coin's book profile, defaulting to BTC's.
func LiquidityProfileFor(symbol string) LiquidityProfile {
	if p, ok := liquidityProfiles[symbol]; ok {
		return p
	}
	return liquidityProfiles["BTC"]
}

// LiquidityImpactFactor scales the closed-form impact estimator per symbol;
// unknown symbols get 0.5.
func LiquidityImpactFactor(symbol string) float64 {
	switch symbol {
	case "BTC":
		return 1.0
	case "ETH":
		return 0.8
	case "SOL":
		return 0.6
	case "DOGE":
		return 0.5
	case "PEPE":
		return 0.3
	default:
		return 0.5
	}
}

// Fee rates applied to notional on execution.
const (
	MakerFeeRate = 0.0002
	TakerFeeRate = 0.0004
)

// LeverageTier caps leverage by open notional.
type LeverageTier struct {
	MaxNotional float64 // +Inf for the last tier
	MaxLeverage float64
}

var leverageTiers = map[string][]LeverageTier{
	"BTC": {
		{250_000, 125}, {1_000_000, 100}, {5_000_000, 50}, {20_000_000, 20}, {maxNotionalCap, 10},
	},
	"ETH": {
		{500_000, 125}, {2_000_000, 100}, {10_000_000, 50}, {50_000_000, 20}, {maxNotionalCap, 10},
	},
	"SOL": {
		{1_000_000, 100}, {5_000_000, 75}, {20_000_000, 50}, {100_000_000, 20}, {maxNotionalCap, 10},
	},
	"DOGE": {
		{500_000, 75}, {2_000_000, 50}, {10_000_000, 25}, {50_000_000, 10}, {maxNotionalCap, 5},
	},
	"PEPE": {
		{250_000, 50}, {1_000_000, 40}, {5_000_000, 20}, {20_000_000, 10}, {maxNotionalCap, 5},
	},
}

var defaultLeverageTiers = []LeverageTier{
	{100_000, 50}, {500_000, 25}, {2_000_000, 10}, {maxNotionalCap, 5},
}

const maxNotionalCap = 1e18 // effectively unbounded

// MaxLeverageFor returns the leverage cap for a symbol at a given notional.
func MaxLeverageFor(symbol string, notional float64) float64 {
	tiers, ok := leverageTiers[symbol]
	if !ok {
		tiers = defaultLeverageTiers
	}
	for _, t := range tiers {
		if notional <= t.MaxNotional {
			return t.MaxLeverage
		}
	}
	return tiers[len(tiers)-1].MaxLeverage
}

// Funding engine parameters.
const (
	FundingIntervalHours = 8
	FundingRateClamp     = 0.0025
)

// FundingExtremeLimit is the per-symbol threshold beyond which the funding
// rate counts as extreme; unknown symbols get 0.0005.
func FundingExtremeLimit(symbol string) float64 {
	switch symbol {
	case "BTC":
		return 0.00025
	case "ETH":
		return 0.00035
	case "SOL":
		return 0.00045
	case "DOGE":
		return 0.00060
	case "PEPE":
		return 0.00080
	default:
		return 0.0005
	}
}

// NewsThreshold is the USD notional above which a simulated entity trade
// makes the feed; 3x the threshold also makes market-moving news.
func NewsThreshold(symbol string) float64 {
	switch symbol {
	case "BTC":
		return 50_000_000
	case "ETH":
		return 10_000_000
	case "SOL":
		return 5_000_000
	case "DOGE":
		return 2_000_000
	case "PEPE":
		return 500_000
	default:
		return 10_000_000
	}
}

// LaunchCoins returns the five launch assets with fresh histories.
func LaunchCoins() []*Coin {
	return []*Coin{
		{
			ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin",
			Price: 45000, IntrinsicValue: 45000,
			Volume: 25_000_000_000, MarketCap: 850_000_000_000,
			CirculatingSupply: 19_600_000, TotalSupply: 21_000_000,
			Volatility: 0.015, Trend: 0.02, CorrelationBeta: 1,
			Tag: TagBTC, CurrentFundingRate: 0.0001,
		},
		{
			ID: "ethereum", Symbol: "ETH", Name: "Ethereum",
			Price: 2400, IntrinsicValue: 2400,
			Volume: 12_000_000_000, MarketCap: 280_000_000_000,
			CirculatingSupply: 120_000_000, TotalSupply: 120_000_000,
			Volatility: 0.025, Trend: 0.02, CorrelationBeta: 1.3,
			Tag: TagBigAlt, CurrentFundingRate: 0.0001,
		},
		{
			ID: "solana", Symbol: "SOL", Name: "Solana",
			Price: 110, IntrinsicValue: 110,
			Volume: 3_000_000_000, MarketCap: 45_000_000_000,
			CirculatingSupply: 440_000_000, TotalSupply: 570_000_000,
			Volatility: 0.04, Trend: 0.05, CorrelationBeta: 1.8,
			Tag: TagBigAlt, CurrentFundingRate: 0.0002,
		},
		{
			ID: "doge", Symbol: "DOGE", Name: "Dogecoin",
			Price: 0.12, IntrinsicValue: 0.12,
			Volume: 1_000_000_000, MarketCap: 16_000_000_000,
			CirculatingSupply: 140_000_000_000, TotalSupply: 140_000_000_000,
			Volatility: 0.06, Trend: 0, CorrelationBeta: 2.3,
			Tag: TagSmallAlt, CurrentFundingRate: 0.0001,
		},
		{
			ID: "pepe", Symbol: "PEPE", Name: "Pepe",
			Price: 0.0000015, IntrinsicValue: 0.0000015,
			Volume: 500_000_000, MarketCap: 600_000_000,
			CirculatingSupply: 420_690_000_000_000, TotalSupply: 420_690_000_000_000,
			Volatility: 0.08, Trend: 0.1, CorrelationBeta: 3.0,
			Tag: TagMeme, CurrentFundingRate: 0.0004,
		},
	}
}
