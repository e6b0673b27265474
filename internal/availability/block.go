package availability

import (
	"math"
	"strings"
)

// Block is an administrative suspension. It has no time dimension and only lifts on Unblock.
type Block struct {
	Blocked               bool    `json:"blocked"`
	Reason                string  `json:"reason"`
	IsFinancialBlock      bool    `json:"isFinancialBlock"`
	FinancialValue        float64 `json:"financialValue"`
	FinancialInstallments int     `json:"financialInstallments"`
}

// BlockRequest carries the raw block input. Financial fields are pointers so that
// "missing" can be told apart from zero.
type BlockRequest struct {
	Reason                string
	IsFinancialBlock      bool
	FinancialValue        *float64
	FinancialInstallments *int
}

// NewBlock validates a block request and returns the resulting state.
func NewBlock(req BlockRequest) (Block, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return Block{}, invalid("reason", "is required")
	}
	block := Block{
		Blocked:          true,
		Reason:           reason,
		IsFinancialBlock: req.IsFinancialBlock,
	}
	if !req.IsFinancialBlock {
		return block, nil
	}

	if req.FinancialValue == nil {
		return Block{}, invalid("financialValue", "is required for a financial block")
	}
	value := *req.FinancialValue
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return Block{}, invalid("financialValue", "must be a finite number >= 0")
	}
	if req.FinancialInstallments == nil {
		return Block{}, invalid("financialInstallments", "is required for a financial block")
	}
	if *req.FinancialInstallments < 1 {
		return Block{}, invalid("financialInstallments", "must be >= 1, got %d", *req.FinancialInstallments)
	}
	block.FinancialValue = value
	block.FinancialInstallments = *req.FinancialInstallments
	return block, nil
}

// Unblocked is the cleared block state.
func Unblocked() Block {
	return Block{}
}
