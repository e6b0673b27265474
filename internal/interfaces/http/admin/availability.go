package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	adminapp "github.com/sngm3741/delivery-availability/api/internal/admin/application"
	"github.com/sngm3741/delivery-availability/api/internal/interfaces/http/common"
)

func (h *Handler) availabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.StoreIDParam(h.logger, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		result, err := h.availability.GetAvailability(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, "getAvailability id="+id, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewAvailabilityResponse(result))
	}
}

func (h *Handler) pauseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.StoreIDParam(h.logger, w, r)
		if !ok {
			return
		}

		var req adminPauseRequest
		if err := decodeOptionalBody(r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		pause, err := h.availability.PauseStore(ctx, id, req.Minutes, req.Reason)
		if err != nil {
			common.WriteError(h.logger, w, "pauseStore id="+id, err)
			return
		}

		h.logger.Printf("store paused storeId=%s minutes=%d by=%s", id, req.Minutes, common.ActorFromContext(r.Context()))
		common.WriteJSON(h.logger, w, http.StatusOK, adminPauseResponse{StoreID: id, Pause: common.NewPauseResponse(pause)})
	}
}

func (h *Handler) resumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.StoreIDParam(h.logger, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		pause, err := h.availability.ResumeStorePause(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, "resumeStorePause id="+id, err)
			return
		}

		h.logger.Printf("store resumed storeId=%s by=%s", id, common.ActorFromContext(r.Context()))
		common.WriteJSON(h.logger, w, http.StatusOK, adminPauseResponse{StoreID: id, Pause: common.NewPauseResponse(pause)})
	}
}

func (h *Handler) blockHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.StoreIDParam(h.logger, w, r)
		if !ok {
			return
		}

		var req adminBlockRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		block, err := h.availability.BlockStore(ctx, id, adminapp.BlockStoreCommand{
			Reason:                req.Reason,
			IsFinancialBlock:      req.IsFinancialBlock,
			FinancialValue:        req.FinancialValue,
			FinancialInstallments: req.FinancialInstallments,
		})
		if err != nil {
			common.WriteError(h.logger, w, "blockStore id="+id, err)
			return
		}

		h.logger.Printf("store blocked storeId=%s financial=%t by=%s", id, block.IsFinancialBlock, common.ActorFromContext(r.Context()))
		common.WriteJSON(h.logger, w, http.StatusOK, adminBlockResponse{StoreID: id, Block: block, IsActive: isActive(block)})
	}
}

func (h *Handler) unblockHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.StoreIDParam(h.logger, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		block, err := h.availability.UnblockStore(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, "unblockStore id="+id, err)
			return
		}

		h.logger.Printf("store unblocked storeId=%s by=%s", id, common.ActorFromContext(r.Context()))
		common.WriteJSON(h.logger, w, http.StatusOK, adminBlockResponse{StoreID: id, Block: block, IsActive: isActive(block)})
	}
}

// decodeOptionalBody accepts an empty body as the zero request.
func decodeOptionalBody(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
