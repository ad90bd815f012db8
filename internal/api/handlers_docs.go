package api

import (
	"net/http"
	"os"

	"github.com/dgallion1/markdownql/internal/parser"
)

type documentInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// handleListDocuments lists the queryable files in the server's directory.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	dir := s.dir
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	docs := []documentInfo{}
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		docs = append(docs, documentInfo{Name: e.Name(), Size: info.Size()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}
