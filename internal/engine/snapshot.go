package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// Snapshot is a decoded session document.
// A nil field means the document did not carry it.
type Snapshot struct {
	Roster  *Roster
	Catalog *Catalog
}

type snapshotPerson struct {
	StartDate *string `json:"start_date"`
}

// EncodeSnapshot writes the two-field session document:
//
//	{"people": {name: {"start_date": "YYYY-MM-DD"}}, "anniversary_types": [label, ...]}
//
// People keep roster order and the output is indented with four spaces.
func EncodeSnapshot(w io.Writer, roster *Roster, catalog *Catalog) error {
	var compact bytes.Buffer

	compact.WriteString(`{"` + config.SnapshotPeople + `":{`)
	for i, p := range roster.People() {
		if i > 0 {
			compact.WriteByte(',')
		}
		name, err := marshalRaw(p.Name)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrSnapshotEncode, err)
		}
		date := FormatDate(p.StartDate)
		entry, err := json.Marshal(snapshotPerson{StartDate: &date})
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrSnapshotEncode, err)
		}
		compact.Write(name)
		compact.WriteByte(':')
		compact.Write(entry)
	}
	compact.WriteString(`},"` + config.SnapshotTypes + `":`)

	labels, err := marshalRaw(catalog.Labels())
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSnapshotEncode, err)
	}
	compact.Write(labels)
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", config.SnapshotIndent); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSnapshotEncode, err)
	}
	out.WriteByte('\n')

	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSnapshotEncode, err)
	}
	return nil
}

// DecodeSnapshot parses and validates a session document.
// Every person and label is checked before anything is returned, so a failure
// (always wrapping ErrImportFailure) never yields a partial snapshot.
func DecodeSnapshot(r io.Reader, rule LabelRule) (Snapshot, error) {
	dec := json.NewDecoder(r)
	var doc map[string]json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return Snapshot{}, importFailure(config.ErrSnapshotDecode, err)
	}
	if doc == nil {
		return Snapshot{}, importFailure(config.ErrSnapshotDecode, errors.New("document is null"))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Snapshot{}, importFailure(config.ErrSnapshotDecode, errors.New("trailing data after document"))
	}

	var snap Snapshot

	if raw, ok := doc[config.SnapshotPeople]; ok {
		roster, err := decodePeople(raw)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Roster = roster
	}

	if raw, ok := doc[config.SnapshotTypes]; ok {
		catalog, err := decodeTypes(raw, rule)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Catalog = catalog
	}

	return snap, nil
}

// decodePeople walks the object token by token to keep the document's key order.
func decodePeople(raw json.RawMessage) (*Roster, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, importFailure(config.ErrSnapshotDecode, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, importFailure(config.ErrSnapshotDecode, fmt.Errorf("%q must be an object", config.SnapshotPeople))
	}

	roster := NewRoster()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, importFailure(config.ErrSnapshotDecode, err)
		}
		name, _ := tok.(string)

		var entry snapshotPerson
		if err := dec.Decode(&entry); err != nil {
			return nil, importFailure(config.ErrSnapshotPerson, fmt.Errorf("%q: %w", name, err))
		}
		if entry.StartDate == nil {
			return nil, importFailure(config.ErrSnapshotPerson, fmt.Errorf("%q: %s", name, config.ErrDateRequired))
		}

		start, err := ParseDate(*entry.StartDate)
		if err != nil {
			return nil, importFailure(config.ErrSnapshotPerson, fmt.Errorf("%q: %w", name, err))
		}
		p, err := NewPerson(name, start)
		if err != nil {
			return nil, importFailure(config.ErrSnapshotPerson, err)
		}
		roster.Put(p)
	}

	if _, err := dec.Token(); err != nil {
		return nil, importFailure(config.ErrSnapshotDecode, err)
	}
	return roster, nil
}

func decodeTypes(raw json.RawMessage, rule LabelRule) (*Catalog, error) {
	var labels []string
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, importFailure(config.ErrSnapshotType, err)
	}
	if labels == nil {
		return nil, importFailure(config.ErrSnapshotType, errors.New("null list"))
	}

	catalog := NewCatalog(rule)
	for _, label := range labels {
		if _, err := catalog.AddLabel(label); err != nil {
			return nil, importFailure(config.ErrSnapshotType, err)
		}
	}
	return catalog, nil
}

// marshalRaw is json.Marshal without HTML escaping, so names like "R&D" stay readable.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func importFailure(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrImportFailure, msg, err)
}
