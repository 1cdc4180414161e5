package monitoring

import (
	"fmt"
	"net/http"
)

// HealthHandler reports the monitor's view of the last analysis. Mounted
// by the web front-end under /healthz.
func HealthHandler(m *Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if m.IsHealthy() {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "OK - %s", m.StatusSummary())
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "Unhealthy - %s", m.StatusSummary())
	}
}
