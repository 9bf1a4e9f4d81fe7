package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"instock-widget/internal/availability"
	"instock-widget/internal/model"
	"instock-widget/internal/stock"
)

// handleAvailability serves the widget's data: resolved config plus the
// decorated, sorted location rows for one variant.
// GET /api/v1/availability?shop=...&variant=...
func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := &availability.Request{
		Shop:      r.URL.Query().Get("shop"),
		VariantID: r.URL.Query().Get("variant"),
	}

	h.logger.Info("serving availability",
		zap.String("shop", req.Shop),
		zap.String("variant", req.VariantID),
	)

	payload, err := h.provider.LocationAvailability(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeData(w, r, http.StatusOK, payload)
}

// handleAvailabilityExport serves the same rows as text/csv for merchants
// auditing their setup. Errors still use the JSON envelope; nothing has been
// written when they occur.
// GET /api/v1/availability/export?shop=...&variant=...
func (h *Handler) handleAvailabilityExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := &availability.Request{
		Shop:      r.URL.Query().Get("shop"),
		VariantID: r.URL.Query().Get("variant"),
	}

	payload, err := h.provider.LocationAvailability(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "availability-"+req.VariantID+".csv"))

	if err := writeRowsCSV(w, payload); err != nil {
		// Headers are gone; all we can do is log.
		h.logger.Error("failed to write csv export", zap.Error(err))
	}
}

func writeRowsCSV(w http.ResponseWriter, payload *model.AvailabilityPayload) error {
	cw := csv.NewWriter(w)
	header := []string{
		"locationId", "displayName", "quantity", "status",
		"hasShipping", "hasLocalDelivery", "storePickupEnabled",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range payload.Locations {
		status := stock.StatusOf(row.Quantity, payload.Config.Thresholds)
		record := []string{
			row.LocationID,
			row.DisplayName,
			strconv.Itoa(row.Quantity),
			status.String(),
			strconv.FormatBool(row.HasShipping),
			strconv.FormatBool(row.HasLocalDelivery),
			strconv.FormatBool(row.StorePickupEnabled),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
