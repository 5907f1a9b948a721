package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"reflect"
	"sort"
	"strconv"

	"github.com/bndr/gotabulate"
)

//  ######################################################
//              FUNCTION PARAMS
//  ######################################################

// Params represents a generic set of key-value parameters,
// used for constructing query strings or request bodies.
type Params map[string]any

// ToQuery serializes the Params into a URL-encoded query string.
func (pr *Params) ToQuery() string {
	values := urlpkg.Values{}
	for k, v := range *pr {
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// ToBody serializes the Params into a JSON-encoded io.Reader,
// suitable for use as the body of a POST or PUT request.
func (pr *Params) ToBody() (io.Reader, error) {
	buffer, err := json.Marshal(*pr)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(buffer), nil
}

// Update merges other into the params. Existing keys are kept unless override is set.
func (pr *Params) Update(other Params, override bool) {
	if *pr == nil {
		*pr = Params{}
	}
	for k, v := range other {
		if _, exists := (*pr)[k]; exists && !override {
			continue
		}
		(*pr)[k] = v
	}
}

// Without removes the given keys from the params.
func (pr *Params) Without(keys ...string) {
	for _, k := range keys {
		delete(*pr, k)
	}
}

// NewParamsFromStruct converts a struct into Params using its json tags.
func NewParamsFromStruct(obj any) (Params, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var params Params
	if err = json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	return params, nil
}

//  ######################################################
//              RECORDS
//  ######################################################

// Renderable is implemented by types that can render themselves for CLI display or logging.
type Renderable interface {
	PrettyTable() string
	PrettyJson(indent ...string) string
}

// Record represents a single resource record as a key-value map.
// When a response is empty (e.g., 204 No Content), an empty Record{} is returned.
type Record map[string]any

// RecordSet represents a list of Record objects.
type RecordSet []Record

// RecordUnion defines a union of supported record types for generic operations.
type RecordUnion interface {
	Record | RecordSet
}

// RecordID returns the server assigned identifier of the record as a string.
// Numeric ids are formatted without a fraction. Returns "" if the record has no id.
func (r Record) RecordID() string {
	idVal, ok := r["id"]
	if !ok || idVal == nil {
		return ""
	}
	return FormatScalar(idVal)
}

// Fill populates the given struct pointer from the Record using its json tags.
func (r Record) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a struct")
	}
	if val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("container must point to a struct")
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, container)
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// PrettyTable prints a single Record as an attr/value table.
func (r Record) PrettyTable() string {
	if len(r) == 0 {
		return "<>"
	}
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	// id first
	sort.SliceStable(keys, func(i, j int) bool { return keys[i] == "id" && keys[j] != "id" })

	rows := make([][]any, 0, len(keys))
	for _, key := range keys {
		if val := r[key]; val != nil {
			rows = append(rows, []any{key, FormatScalar(val)})
		}
	}
	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"attr", "value"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	return t.Render("grid")
}

// PrettyJson prints the Record as JSON, optionally indented
func (r Record) PrettyJson(indent ...string) string {
	return prettyJson(r, indent...)
}

func (r Record) Empty() bool {
	return len(r) == 0
}

func (r Record) String() string {
	return r.PrettyJson()
}

// Fill populates a pointer to a slice of structs with the records of the set.
func (rs RecordSet) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a slice")
	}
	if val.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("container must point to a slice")
	}
	raw, err := json.Marshal(rs)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, container)
}

// Find returns the record with the given id.
func (rs RecordSet) Find(id string) (Record, bool) {
	for _, r := range rs {
		if r.RecordID() == id {
			return r, true
		}
	}
	return nil, false
}

// IDs returns the ids of all records in order.
func (rs RecordSet) IDs() []string {
	ids := make([]string, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.RecordID())
	}
	return ids
}

// Table renders the set as one grid with the given columns. With no columns, every key seen in
// the set is used, sorted, with id first.
func (rs RecordSet) Table(columns ...string) string {
	if len(rs) == 0 {
		return "[]"
	}
	if len(columns) == 0 {
		seen := map[string]struct{}{}
		for _, r := range rs {
			for k := range r {
				if _, ok := seen[k]; !ok {
					seen[k] = struct{}{}
					columns = append(columns, k)
				}
			}
		}
		sort.Strings(columns)
		sort.SliceStable(columns, func(i, j int) bool { return columns[i] == "id" && columns[j] != "id" })
	}
	rows := make([][]any, 0, len(rs))
	for _, r := range rs {
		row := make([]any, 0, len(columns))
		for _, c := range columns {
			if v, ok := r[c]; ok && v != nil {
				row = append(row, FormatScalar(v))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	t := gotabulate.Create(rows)
	t.SetHeaders(columns)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(40)
	return t.Render("grid")
}

// PrettyTable prints the full RecordSet as a single grid.
func (rs RecordSet) PrettyTable() string {
	return rs.Table()
}

func (rs RecordSet) Empty() bool {
	return len(rs) == 0
}

// PrettyJson prints the RecordSet as JSON, optionally indented
func (rs RecordSet) PrettyJson(indent ...string) string {
	return prettyJson(rs, indent...)
}

func prettyJson(v any, indent ...string) string {
	var (
		b   []byte
		err error
	)
	if len(indent) > 0 {
		b, err = json.MarshalIndent(v, "", indent[0])
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

// FormatScalar renders a JSON scalar for display. Whole floats are printed without a fraction.
func FormatScalar(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case json.Number:
		return typed.String()
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// unmarshalToRecordUnion parses an HTTP response body into a Record (JSON object, or empty body)
// or a RecordSet (JSON array).
func unmarshalToRecordUnion(response *http.Response) (Renderable, error) {
	defer response.Body.Close()

	if response.ContentLength == 0 || response.StatusCode == http.StatusNoContent {
		return Record{}, nil
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Record{}, nil
	}
	switch trimmed[0] {
	case '{':
		var rec Record
		if err := json.Unmarshal(trimmed, &rec); err != nil {
			return nil, err
		}
		return rec, nil
	case '[':
		var recSet RecordSet
		if err := json.Unmarshal(trimmed, &recSet); err != nil {
			return nil, fmt.Errorf("expected array of objects: %w", err)
		}
		return recSet, nil
	default:
		return nil, fmt.Errorf("unsupported JSON format: must be object or array")
	}
}

