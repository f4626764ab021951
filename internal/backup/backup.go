// Package backup exports all children and the therapist name to a
// versioned JSON document and restores them from one.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/store"
)

// FormatVersion is written to every exported document. Documents with a
// different major version are rejected.
const FormatVersion = "v1.0.0"

var (
	// ErrIncompatibleVersion means the document was written by an
	// incompatible release.
	ErrIncompatibleVersion = errors.New("incompatible backup format version")
	// ErrInvalidDocument means the document does not match the backup schema.
	ErrInvalidDocument = errors.New("invalid backup document")
)

// Document is the backup file layout.
type Document struct {
	FormatVersion string        `json:"formatVersion"`
	ExportedAt    time.Time     `json:"exportedAt"`
	TherapistName string        `json:"therapistName"`
	Children      []child.Child `json:"children"`
}

// Mode selects how Restore combines a backup with stored data.
type Mode int

const (
	// ModeReplace discards stored children.
	ModeReplace Mode = iota
	// ModeMerge keeps stored children and appends those with new ids.
	ModeMerge
)

// ParseMode accepts "replace" or "merge".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "replace":
		return ModeReplace, nil
	case "merge":
		return ModeMerge, nil
	}
	return 0, fmt.Errorf("unknown restore mode %q", s)
}

func (m Mode) String() string {
	if m == ModeMerge {
		return "merge"
	}
	return "replace"
}

// Result summarizes a restore.
type Result struct {
	Added   int
	Skipped int
	Total   int
}

// Export collects every stored child and the therapist name.
func Export(ctx context.Context, children store.ChildRepo, therapist store.TherapistRepo, now time.Time) (Document, error) {
	list, err := children.List(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("list children: %w", err)
	}
	name, err := therapist.Name(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("therapist name: %w", err)
	}
	return Document{
		FormatVersion: FormatVersion,
		ExportedAt:    now.UTC(),
		TherapistName: name,
		Children:      list,
	}, nil
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Read decodes and validates a backup document.
func Read(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read backup: %w", err)
	}

	raw, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := checkVersion(raw); err != nil {
		return Document{}, err
	}
	if err := validate(raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := checkUniqueIDs(doc.Children); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// checkUniqueIDs rejects documents where two children share an id, since
// only the first of them could ever be looked up again.
func checkUniqueIDs(children []child.Child) error {
	seen := make(map[string]bool, len(children))
	for _, c := range children {
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate child id %q", ErrInvalidDocument, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// checkVersion runs before schema validation so that documents from a
// future major release report the version instead of schema noise.
func checkVersion(raw any) error {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	v, ok := obj["formatVersion"].(string)
	if !ok || !semver.IsValid(v) {
		return nil
	}
	if semver.Major(v) != semver.Major(FormatVersion) {
		return fmt.Errorf("%w: %s (supported %s)", ErrIncompatibleVersion, v, semver.Major(FormatVersion))
	}
	return nil
}

// Restore writes the document's children according to mode. The therapist
// name is restored when the document has one, except in merge mode where a
// stored name wins.
func Restore(ctx context.Context, children store.ChildRepo, therapist store.TherapistRepo, doc Document, mode Mode) (Result, error) {
	var (
		res    Result
		merged []child.Child
	)

	switch mode {
	case ModeMerge:
		existing, err := children.List(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("list children: %w", err)
		}
		seen := make(map[string]bool, len(existing))
		for _, c := range existing {
			seen[c.ID] = true
		}
		merged = existing
		for _, c := range doc.Children {
			if seen[c.ID] {
				res.Skipped++
				continue
			}
			seen[c.ID] = true
			merged = append(merged, c)
			res.Added++
		}
	default:
		if err := checkUniqueIDs(doc.Children); err != nil {
			return Result{}, err
		}
		merged = append([]child.Child{}, doc.Children...)
		res.Added = len(merged)
	}

	if err := children.ReplaceAll(ctx, merged); err != nil {
		return Result{}, fmt.Errorf("write children: %w", err)
	}
	res.Total = len(merged)

	if doc.TherapistName == "" {
		return res, nil
	}
	if mode == ModeMerge {
		current, err := therapist.Name(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("therapist name: %w", err)
		}
		if current != "" {
			return res, nil
		}
	}
	if err := therapist.SetName(ctx, doc.TherapistName); err != nil {
		return Result{}, fmt.Errorf("restore therapist name: %w", err)
	}
	return res, nil
}
