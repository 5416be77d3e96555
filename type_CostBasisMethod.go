package snowball

import (
	"fmt"
	"strings"
)

// CostBasisMethod defines how the cost of sold shares is matched against open lots.
type CostBasisMethod int

const (
	// AverageCost matches a sale against the average cost of all open shares.
	AverageCost CostBasisMethod = iota
	// FIFO (First-In, First-Out) matches a sale against the oldest open lots first.
	FIFO
)

func (m CostBasisMethod) String() string {
	switch m {
	case AverageCost:
		return "average"
	case FIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// ParseCostBasisMethod parses a string into a CostBasisMethod.
func ParseCostBasisMethod(s string) (CostBasisMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "average":
		return AverageCost, nil
	case "fifo":
		return FIFO, nil
	default:
		return 0, fmt.Errorf("unknown cost basis method: %q", s)
	}
}
