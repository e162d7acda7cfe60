package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/itiky/game-console/model"
)

// ErrUnsupportedFormat is returned for import files other than .json and .csv.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// storageImportRecord accepts the value both as a JSON string and as a JSON object.
type storageImportRecord struct {
	Collection      string          `json:"collection"`
	Key             string          `json:"key"`
	UserId          string          `json:"user_id"`
	Value           json.RawMessage `json:"value"`
	PermissionRead  int             `json:"permission_read"`
	PermissionWrite int             `json:"permission_write"`
}

// DecodeStorageObjects reads storage objects to import, the format is picked by the file extension.
// CSV files must carry a header row, columns are matched by name.
func DecodeStorageObjects(fileName string, r io.Reader) ([]model.StorageObject, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".json":
		return decodeStorageJSON(r)
	case ".csv":
		return decodeStorageCSV(r)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileName)
}

func decodeStorageJSON(r io.Reader) ([]model.StorageObject, error) {
	var records []storageImportRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("JSON decode: %w", err)
	}

	objects := make([]model.StorageObject, 0, len(records))
	for i, rec := range records {
		value := string(rec.Value)
		if trimmed := bytes.TrimSpace(rec.Value); len(trimmed) > 0 && trimmed[0] == '"' {
			if err := json.Unmarshal(trimmed, &value); err != nil {
				return nil, fmt.Errorf("record[%d].value: %w", i, err)
			}
		}

		obj, err := model.NewStorageObject(rec.Collection, rec.Key, rec.UserId, value, rec.PermissionRead, rec.PermissionWrite)
		if err != nil {
			return nil, fmt.Errorf("record[%d]: %w", i, err)
		}
		objects = append(objects, obj)
	}

	return objects, nil
}

func decodeStorageCSV(r io.Reader) ([]model.StorageObject, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV decode: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty", "header")
	}

	columns := make(map[string]int)
	for i, name := range rows[0] {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"collection", "key", "value"} {
		if _, found := columns[required]; !found {
			return nil, fmt.Errorf("%s: column %q missing", "header", required)
		}
	}

	objects := make([]model.StorageObject, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cell := func(name string) string {
			idx, found := columns[name]
			if !found || idx >= len(row) {
				return ""
			}
			return row[idx]
		}
		permission := func(name string) (int, error) {
			raw := strings.TrimSpace(cell(name))
			if raw == "" {
				return 0, nil
			}
			return strconv.Atoi(raw)
		}

		permissionRead, err := permission("permission_read")
		if err != nil {
			return nil, fmt.Errorf("row[%d].%s: %w", i+1, "permission_read", err)
		}
		permissionWrite, err := permission("permission_write")
		if err != nil {
			return nil, fmt.Errorf("row[%d].%s: %w", i+1, "permission_write", err)
		}

		obj, err := model.NewStorageObject(cell("collection"), cell("key"), cell("user_id"), cell("value"), permissionRead, permissionWrite)
		if err != nil {
			return nil, fmt.Errorf("row[%d]: %w", i+1, err)
		}
		objects = append(objects, obj)
	}

	return objects, nil
}
