package server

import (
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/itiky/game-console/export"
	"github.com/itiky/game-console/model"
)

// ImportStorage writes the storage objects, returns the number of objects written.
func (s *ConsoleService) ImportStorage(objects []model.StorageObject) int {
	start := time.Now()
	now := s.now()
	for _, obj := range objects {
		s.store.WriteStorage(obj, now)
	}
	s.monitor.RPCServed(time.Since(start), false)
	s.logger.Info("Storage imported", "objects", len(objects))

	return len(objects)
}

// importHandler serves the storage bulk import endpoint.
// Every file is decoded and validated before anything is written.
func importHandler(svc *ConsoleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			writeError(w, status.Error(codes.InvalidArgument, "Cannot parse the uploaded files."))
			return
		}
		defer r.MultipartForm.RemoveAll()

		fields := make([]string, 0, len(r.MultipartForm.File))
		for field := range r.MultipartForm.File {
			fields = append(fields, field)
		}
		sortImportFields(fields)

		objects := make([]model.StorageObject, 0)
		for _, field := range fields {
			for _, fh := range r.MultipartForm.File[field] {
				f, err := fh.Open()
				if err != nil {
					writeError(w, status.Errorf(codes.InvalidArgument, "Cannot open %s.", fh.Filename))
					return
				}
				decoded, err := export.DecodeStorageObjects(fh.Filename, f)
				f.Close()
				if err != nil {
					writeError(w, status.Errorf(codes.InvalidArgument, "%s: %v", fh.Filename, err))
					return
				}
				objects = append(objects, decoded...)
			}
		}
		if len(objects) == 0 {
			writeError(w, status.Error(codes.InvalidArgument, "No storage objects to import."))
			return
		}

		writeJSON(w, http.StatusOK, model.StorageImportResponse{Imported: svc.ImportStorage(objects)})
	}
}

// sortImportFields orders import_N fields by N, so later uploads overwrite earlier ones.
// Fields without a numeric suffix go last, by name.
func sortImportFields(fields []string) {
	index := func(field string) (int, bool) {
		n, found := strings.CutPrefix(strings.TrimSuffix(field, filepath.Ext(field)), "import_")
		if !found {
			return 0, false
		}
		idx, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}

		return idx, true
	}

	sort.SliceStable(fields, func(i, j int) bool {
		iIdx, iOk := index(fields[i])
		jIdx, jOk := index(fields[j])
		switch {
		case iOk && jOk && iIdx != jIdx:
			return iIdx < jIdx
		case iOk != jOk:
			return iOk
		}

		return fields[i] < fields[j]
	})
}
