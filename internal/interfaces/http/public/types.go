package public

import "github.com/sngm3741/delivery-availability/api/internal/interfaces/http/common"

type storeSummaryResponse struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	Category     string                      `json:"category"`
	IsOpen       bool                        `json:"isOpen"`
	Availability common.AvailabilityResponse `json:"availability"`
}

type storeListResponse struct {
	Items []storeSummaryResponse `json:"items"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
	Total int                    `json:"total"`
}

type storeDetailResponse struct {
	storeSummaryResponse
	Description string                   `json:"description,omitempty"`
	Schedule    [][]common.WindowPayload `json:"schedule"`
}
