package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/multikids/portage/internal/child"
)

// KeyChildren holds the JSON array of all children.
const KeyChildren = "children"

// ChildRepo reads and writes child records. The whole list is stored under
// one key, so every write replaces it.
type ChildRepo interface {
	// List returns all children in insertion order.
	List(ctx context.Context) ([]child.Child, error)
	// Get returns one child, or ErrNotFound.
	Get(ctx context.Context, id string) (child.Child, error)
	// Save replaces the child with the same ID in place, or appends it.
	Save(ctx context.Context, c child.Child) error
	// Delete removes a child, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// ReplaceAll overwrites the stored list.
	ReplaceAll(ctx context.Context, children []child.Child) error
}

type childRepo struct {
	blobs BlobStore
}

func (r *childRepo) List(ctx context.Context) ([]child.Child, error) {
	data, err := r.blobs.Get(ctx, KeyChildren)
	if errors.Is(err, ErrNotFound) {
		return []child.Child{}, nil
	}
	if err != nil {
		return nil, err
	}
	var children []child.Child
	if err := json.Unmarshal(data, &children); err != nil {
		return nil, fmt.Errorf("decode children: %w", err)
	}
	if children == nil {
		children = []child.Child{}
	}
	return children, nil
}

func (r *childRepo) Get(ctx context.Context, id string) (child.Child, error) {
	children, err := r.List(ctx)
	if err != nil {
		return child.Child{}, err
	}
	for _, c := range children {
		if c.ID == id {
			return c, nil
		}
	}
	return child.Child{}, fmt.Errorf("child %s: %w", id, ErrNotFound)
}

func (r *childRepo) Save(ctx context.Context, c child.Child) error {
	children, err := r.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range children {
		if children[i].ID == c.ID {
			children[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		children = append(children, c)
	}
	return r.ReplaceAll(ctx, children)
}

func (r *childRepo) Delete(ctx context.Context, id string) error {
	children, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range children {
		if children[i].ID == id {
			children = append(children[:i], children[i+1:]...)
			return r.ReplaceAll(ctx, children)
		}
	}
	return fmt.Errorf("child %s: %w", id, ErrNotFound)
}

func (r *childRepo) ReplaceAll(ctx context.Context, children []child.Child) error {
	if children == nil {
		children = []child.Child{}
	}
	data, err := json.Marshal(children)
	if err != nil {
		return fmt.Errorf("encode children: %w", err)
	}
	return r.blobs.Put(ctx, KeyChildren, data)
}
