package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/sngm3741/delivery-availability/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/delivery-availability/api/internal/public/application"
)

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), common.DefaultPageSize)

		filter := publicapp.StoreFilter{
			Category: common.CanonicalCategory(query.Get("category")),
			Keyword:  strings.TrimSpace(query.Get("keyword")),
			OpenOnly: common.ParseFlag(query.Get("open")),
		}

		result, err := h.storeQueries.List(ctx, filter, publicapp.Paging{Page: page, Limit: limit})
		if err != nil {
			common.WriteError(h.logger, w, "store list", err)
			return
		}

		items := make([]storeSummaryResponse, 0, len(result.Items))
		for _, view := range result.Items {
			items = append(items, buildStoreSummaryResponse(view))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, storeListResponse{
			Items: items,
			Page:  result.Page,
			Limit: result.Limit,
			Total: result.Total,
		})
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.StoreIDParam(h.logger, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		view, err := h.storeQueries.Detail(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, "store detail id="+id, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, storeDomainToDetailResponse(*view))
	}
}

func (h *Handler) storeAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.StoreIDParam(h.logger, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		result, err := h.storeQueries.Availability(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, "store availability id="+id, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, common.NewAvailabilityResponse(result))
	}
}
