package xhttp

import (
	"net/http"

	go_json "github.com/goccy/go-json"
)

// WriteJSON writes data with status. Token responses must never be cached.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	SetHeaderContentTypeApplicationJSON(w)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = go_json.NewEncoder(w).Encode(data)
}

func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
