package datastore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/f1o/renovate/internal/models"
)

// HistoryRecord maps category -> title id -> last known version.
// Only the latest version per title is kept.
type HistoryRecord map[string]map[string]string

// NewHistoryRecord returns a record holding an empty mapping for every known category.
func NewHistoryRecord() HistoryRecord {
	r := make(HistoryRecord, len(models.KnownCategories))
	r.EnsureCategories()
	return r
}

// EnsureCategories adds an empty mapping for each known category that is
// missing or null. It reports whether anything was added.
func (r HistoryRecord) EnsureCategories() bool {
	added := false
	for _, c := range models.KnownCategories {
		if r[c.String()] == nil {
			r[c.String()] = map[string]string{}
			added = true
		}
	}
	return added
}

// Version returns the recorded version of a title and whether one exists.
func (r HistoryRecord) Version(category models.Category, titleID string) (string, bool) {
	titles, ok := r[category.String()]
	if !ok {
		return "", false
	}
	v, ok := titles[titleID]
	return v, ok
}

// SetVersion replaces the recorded version of a title.
func (r HistoryRecord) SetVersion(category models.Category, titleID, version string) {
	titles := r[category.String()]
	if titles == nil {
		titles = map[string]string{}
		r[category.String()] = titles
	}
	titles[titleID] = version
}

// Titles returns the title ids recorded under category, sorted.
func (r HistoryRecord) Titles(category models.Category) []string {
	ids := make([]string, 0, len(r[category.String()]))
	for id := range r[category.String()] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Categories returns the known categories first, in their fixed order, then
// any other categories found in the file, sorted.
func (r HistoryRecord) Categories() []string {
	out := make([]string, 0, len(r))
	for _, c := range models.KnownCategories {
		if _, ok := r[c.String()]; ok {
			out = append(out, c.String())
		}
	}

	var extra []string
	for name := range r {
		if !slices.Contains(out, name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// MarshalJSON keeps categories in Categories() order so the file layout is stable.
func (r HistoryRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.Categories() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalUnescaped(name)
		if err != nil {
			return nil, err
		}
		titles := r[name]
		if titles == nil {
			titles = map[string]string{}
		}
		value, err := marshalUnescaped(titles)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeHistory renders the on-disk form: four-space indentation, no trailing
// newline, HTML characters left as is and every non-ASCII character as a
// \uXXXX escape, matching history files written by the Python updater.
func encodeHistory(r HistoryRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// escapeNonASCII rewrites multi-byte runes as UTF-16 \u escapes. Outside of
// strings encoded JSON is pure ASCII, so the rewrite only touches string contents.
func escapeNonASCII(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		if data[0] < utf8.RuneSelf {
			out = append(out, data[0])
			data = data[1:]
			continue
		}
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		for _, unit := range utf16.Encode([]rune{r}) {
			out = fmt.Appendf(out, "\\u%04x", unit)
		}
	}
	return out
}
