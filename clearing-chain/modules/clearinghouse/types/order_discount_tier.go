package types

import (
	"fmt"
	"strings"

	"cosmossdk.io/errors"
	"github.com/spf13/cast"
)

// OrderDiscountTier identifies the discount token tier that applied to an order. It is
// captured when a resting order is placed so the fill can be priced later without the
// holder's live token balance.
type OrderDiscountTier uint8

const (
	OrderDiscountTierNone OrderDiscountTier = iota
	OrderDiscountTierFirst
	OrderDiscountTierSecond
	OrderDiscountTierThird
	OrderDiscountTierFourth
)

var orderDiscountTierNames = [...]string{
	OrderDiscountTierNone:   "none",
	OrderDiscountTierFirst:  "first",
	OrderDiscountTierSecond: "second",
	OrderDiscountTierThird:  "third",
	OrderDiscountTierFourth: "fourth",
}

func (t OrderDiscountTier) IsValid() bool {
	return t <= OrderDiscountTierFourth
}

func (t OrderDiscountTier) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("OrderDiscountTier(%d)", uint8(t))
	}
	return orderDiscountTierNames[t]
}

// ParseOrderDiscountTier accepts a tier name (none, first, second, third, fourth) or its
// numeric value 0..4.
func ParseOrderDiscountTier(s string) (OrderDiscountTier, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for idx, name := range orderDiscountTierNames {
		if s == name {
			return OrderDiscountTier(idx), nil
		}
	}

	n, err := cast.ToUint64E(s)
	if err != nil || n > uint64(OrderDiscountTierFourth) {
		return OrderDiscountTierNone, errors.Wrapf(ErrUnknownOrderDiscountTier, "%q", s)
	}

	return OrderDiscountTier(n), nil
}

func (t OrderDiscountTier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, errors.Wrapf(ErrUnknownOrderDiscountTier, "%d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *OrderDiscountTier) UnmarshalText(text []byte) error {
	tier, err := ParseOrderDiscountTier(string(text))
	if err != nil {
		return err
	}

	*t = tier
	return nil
}
