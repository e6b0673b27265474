package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	adminapp "github.com/sngm3741/delivery-availability/api/internal/admin/application"
	"github.com/sngm3741/delivery-availability/api/internal/interfaces/http/common"
)

func (h *Handler) storeSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		queryValues := r.URL.Query()
		page, _ := common.ParsePositiveInt(queryValues.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(queryValues.Get("limit"), 20)

		filter := adminapp.StoreFilter{
			Category:    common.CanonicalCategory(queryValues.Get("category")),
			Keyword:     strings.TrimSpace(queryValues.Get("keyword")),
			BlockedOnly: common.ParseFlag(queryValues.Get("blocked")),
		}
		paging := adminapp.Paging{Page: page, Limit: limit}

		stores, err := h.storeService.List(ctx, filter, paging)
		if err != nil {
			common.WriteError(h.logger, w, "admin store search", err)
			return
		}

		items := make([]adminStoreResponse, 0, len(stores))
		for _, store := range stores {
			items = append(items, adminStoreDomainToResponse(store))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminStoreListResponse{Items: items, Page: page, Limit: limit})
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

		store, err := h.storeService.Detail(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, "admin store detail id="+id, err)
			return
		}
		result, err := h.availability.GetAvailability(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, "admin store availability id="+id, err)
			return
		}

		// Echo the effective pause so an expired stored pause reads as NONE.
		resp := adminStoreDomainToResponse(*store)
		resp.Pause = common.NewPauseResponse(result.Pause)
		availability := common.NewAvailabilityResponse(result)
		resp.Availability = &availability
		common.WriteJSON(h.logger, w, http.StatusOK, resp)
	}
}

func (h *Handler) storeCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminStoreCreateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
			return
		}

		cmd := adminapp.CreateStoreCommand{
			Name:        req.Name,
			Category:    common.CanonicalCategory(req.Category),
			Description: req.Description,
			Schedule:    buildScheduleCommand(req.Schedule),
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		store, err := h.storeService.Create(ctx, cmd)
		if err != nil {
			common.WriteError(h.logger, w, "admin store create", err)
			return
		}

		h.logger.Printf("store created storeId=%s by=%s", store.ID, common.ActorFromContext(r.Context()))
		common.WriteJSON(h.logger, w, http.StatusCreated, adminStoreDomainToResponse(*store))
	}
}

func (h *Handler) storeScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.StoreIDParam(h.logger, w, r)
		if !ok {
			return
		}

		var req adminScheduleRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		store, err := h.storeService.UpdateSchedule(ctx, id, buildScheduleCommand(req.Schedule))
		if err != nil {
			common.WriteError(h.logger, w, "admin store schedule id="+id, err)
			return
		}

		h.logger.Printf("store schedule updated storeId=%s by=%s", id, common.ActorFromContext(r.Context()))
		common.WriteJSON(h.logger, w, http.StatusOK, adminStoreDomainToResponse(*store))
	}
}
