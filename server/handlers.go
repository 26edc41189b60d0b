package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/poiesic/userflow/core"
	"github.com/poiesic/userflow/storage/csvfile"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the body of the health check.
type StatusResponse struct {
	Status string `json:"status"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	table, err := csvfile.ReadTable(s.path)
	if err != nil {
		if errors.Is(err, core.ErrFileNotFound) {
			writeError(w, http.StatusNotFound, notFoundMessage(s.fileName))
			return
		}
		s.logger.Error("failed to read users file", "path", s.path, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, table.Rows)
}

func notFoundMessage(fileName string) string {
	return fmt.Sprintf("Arquivo %s não encontrado. Rode a ETL primeiro.", fileName)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
