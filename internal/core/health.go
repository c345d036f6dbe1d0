package core

import "net/http"

// healthResponse is the JSON body for the liveness endpoint.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
}

// HandleHealth reports process liveness. The service is stateless and holds
// no connections worth probing; reachability of the messaging API is a
// per-dispatch concern, not a liveness one, so the endpoint only confirms
// the process is serving and identifies the running build.
//
// Public, mounted at GET /health.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: s.Config.Service,
		Version: s.Config.Build.Version,
		Commit:  s.Config.Build.Commit,
	})
}
