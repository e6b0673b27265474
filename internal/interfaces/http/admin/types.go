package admin

import (
	"time"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
	"github.com/sngm3741/delivery-availability/api/internal/interfaces/http/common"
)

type adminStoreResponse struct {
	ID           string                       `json:"id"`
	Name         string                       `json:"name"`
	Category     string                       `json:"category"`
	Description  string                       `json:"description,omitempty"`
	Schedule     [][]common.WindowPayload     `json:"schedule"`
	Pause        common.PauseResponse         `json:"pause"`
	Block        availability.Block           `json:"block"`
	IsActive     bool                         `json:"isActive"`
	Availability *common.AvailabilityResponse `json:"availability,omitempty"`
	CreatedAt    time.Time                    `json:"createdAt"`
	UpdatedAt    time.Time                    `json:"updatedAt"`
}

type adminStoreListResponse struct {
	Items []adminStoreResponse `json:"items"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type adminStoreCreateRequest struct {
	Name        string                   `json:"name"`
	Category    string                   `json:"category"`
	Description string                   `json:"description"`
	Schedule    [][]common.WindowPayload `json:"schedule"`
}

type adminScheduleRequest struct {
	Schedule [][]common.WindowPayload `json:"schedule"`
}

type adminPauseRequest struct {
	// Minutes == 0 pauses until resumed.
	Minutes int    `json:"minutes"`
	Reason  string `json:"reason"`
}

type adminBlockRequest struct {
	Reason                string   `json:"reason"`
	IsFinancialBlock      bool     `json:"isFinancialBlock"`
	FinancialValue        *float64 `json:"financialValue"`
	FinancialInstallments *int     `json:"financialInstallments"`
}

type adminPauseResponse struct {
	StoreID string               `json:"storeId"`
	Pause   common.PauseResponse `json:"pause"`
}

type adminBlockResponse struct {
	StoreID  string             `json:"storeId"`
	Block    availability.Block `json:"block"`
	IsActive bool               `json:"isActive"`
}
