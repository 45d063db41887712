// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"io/fs"
	"net/http"
	"time"
)

// dashboardHandler handles dashboard requests.
type dashboardHandler struct{}

// newDashboardHandler creates a new dashboard handler.
func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests. The page polls the JSON
// endpoints client-side; the server only ships the static HTML.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(dashboardFS, "dashboard.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, "dashboard.html", time.Time{}, bytes.NewReader(data))
}
