package handlers

import "net/http"

// Health — GET /health: сводка по апстримам. Всегда 200, деградация
// видна в статусах отдельных сервисов.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Health(r.Context()))
}
