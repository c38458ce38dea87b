package handlers

import (
	"net/http"
)

// GetStats - счётчики для админской панели
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.GetStats(r.Context())
	if err != nil {
		WriteError(w, "Ошибка на сервере, попробуйте позже", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, stats, http.StatusOK)
}
