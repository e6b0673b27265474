package public

import (
	"github.com/sngm3741/delivery-availability/api/internal/interfaces/http/common"
	publicdomain "github.com/sngm3741/delivery-availability/api/internal/public/domain"
)

// buildStoreSummaryResponse exposes the resolved state only. Block details such as
// financial terms stay on the admin surface.
func buildStoreSummaryResponse(view publicdomain.StoreView) storeSummaryResponse {
	return storeSummaryResponse{
		ID:           view.ID,
		Name:         view.Name,
		Category:     view.Category,
		IsOpen:       view.Availability.IsOpen,
		Availability: common.NewAvailabilityResponse(view.Availability),
	}
}

func storeDomainToDetailResponse(view publicdomain.StoreView) storeDetailResponse {
	return storeDetailResponse{
		storeSummaryResponse: buildStoreSummaryResponse(view),
		Description:          view.Description,
		Schedule:             common.NewScheduleResponse(view.Schedule),
	}
}
