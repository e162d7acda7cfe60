package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// JSON writes items as a pretty-printed JSON array.
func JSON[T any](w io.Writer, items []T) error {
	if items == nil {
		items = make([]T, 0)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("JSON encode: %w", err)
	}

	return nil
}

// YAML writes items as a YAML sequence, field names follow the JSON tags.
func YAML[T any](w io.Writer, items []T) error {
	if items == nil {
		items = make([]T, 0)
	}

	// Round trip through JSON to honour the json tags
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("JSON encode: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("JSON decode: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("YAML encode: %w", err)
	}

	return enc.Close()
}

// CSV writes items as a header row plus one row per item.
// Columns follow the declared JSON field order, nested values are JSON-encoded into a single cell.
func CSV[T any](w io.Writer, items []T) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("%s: must be a struct, got %s", "item", typ.Kind())
	}

	columns := csvColumns(typ, nil)
	header := make([]string, 0, len(columns))
	for _, c := range columns {
		header = append(header, c.name)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("CSV header: %w", err)
	}

	for i, item := range items {
		v := reflect.ValueOf(item)
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				break
			}
			v = v.Elem()
		}

		row := make([]string, 0, len(columns))
		for _, c := range columns {
			cell, err := csvCell(v, c.index)
			if err != nil {
				return fmt.Errorf("item[%d].%s: %w", i, c.name, err)
			}
			row = append(row, cell)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("CSV row[%d]: %w", i, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

type csvColumn struct {
	name  string
	index []int
}

// csvColumns lists the JSON visible fields, embedded structs are flattened.
func csvColumns(typ reflect.Type, parent []int) []csvColumn {
	columns := make([]csvColumn, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		index := append(append([]int{}, parent...), i)

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if field.Anonymous && name == "" && field.Type.Kind() == reflect.Struct {
			columns = append(columns, csvColumns(field.Type, index)...)
			continue
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}

		columns = append(columns, csvColumn{name: name, index: index})
	}

	return columns
}

// csvCell renders a single field value.
func csvCell(v reflect.Value, index []int) (string, error) {
	if v.Kind() != reflect.Struct {
		return "", nil
	}

	field, err := v.FieldByIndexErr(index)
	if err != nil {
		return "", nil
	}

	switch field.Kind() {
	case reflect.String:
		return field.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(field.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(field.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(field.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(field.Float(), 'f', -1, 64), nil
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		if field.IsNil() {
			return "", nil
		}
	}

	bz, err := json.Marshal(field.Interface())
	if err != nil {
		return "", err
	}

	return string(bz), nil
}
