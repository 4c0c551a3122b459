package types

const (
	ModuleName = "clearinghouse"
)

// MaxAmountBitLen is the integer width of every quantity the module computes with.
const MaxAmountBitLen = 128

// QuotePrecision is the fixed-point scale of quote asset amounts.
const QuotePrecision = 1_000_000
