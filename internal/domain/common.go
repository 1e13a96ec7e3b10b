package domain

// Side represents the direction of a trade (long or short).
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// Valid reports whether the side is one of the known values.
func (s Side) Valid() bool {
	return s == SideLong || s == SideShort
}

// OrderType represents the order type used to open a trade.
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
	OrderTypeStop   OrderType = "stop"
)

// OrderTypes lists every order type in reporting order.
var OrderTypes = []OrderType{OrderTypeMarket, OrderTypeLimit, OrderTypeStop}

// Valid reports whether the order type is one of the known values.
func (o OrderType) Valid() bool {
	switch o {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStop:
		return true
	default:
		return false
	}
}
