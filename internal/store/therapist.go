package store

import (
	"context"
	"errors"
	"strings"
)

// KeyTherapistName holds the therapist's display name as plain text.
const KeyTherapistName = "therapistName"

// TherapistRepo stores the therapist's display name.
type TherapistRepo interface {
	// Name returns the stored name, or "" when none was set.
	Name(ctx context.Context) (string, error)
	SetName(ctx context.Context, name string) error
}

type therapistRepo struct {
	blobs BlobStore
}

func (r *therapistRepo) Name(ctx context.Context) (string, error) {
	data, err := r.blobs.Get(ctx, KeyTherapistName)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *therapistRepo) SetName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return r.blobs.Delete(ctx, KeyTherapistName)
	}
	return r.blobs.Put(ctx, KeyTherapistName, []byte(name))
}
