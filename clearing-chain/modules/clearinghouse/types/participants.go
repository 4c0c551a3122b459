package types

import (
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// DiscountTokenAccount is a read-only snapshot of a discount token holding. A nil
// *DiscountTokenAccount means the trader presented no holding.
type DiscountTokenAccount struct {
	Owner  common.Address
	Amount math.Int
}

func NewDiscountTokenAccount(owner common.Address, amount math.Int) *DiscountTokenAccount {
	return &DiscountTokenAccount{
		Owner:  owner,
		Amount: amount,
	}
}

// Referrer is the account that referred the trader. A nil *Referrer means the trader
// has no referrer.
type Referrer struct {
	Authority common.Address
}

func NewReferrer(authority common.Address) *Referrer {
	return &Referrer{Authority: authority}
}
