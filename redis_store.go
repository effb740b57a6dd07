package goCred

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/goCred/internal/stores"
	"github.com/MrEthical07/goCred/policy"
)

// redisCredentialStore adapts the internal redis-backed store to the public
// CredentialStore contract. Policies travel through redis as versioned text
// snapshots so a record written by one process parses identically in another.
type redisCredentialStore struct {
	inner *stores.CredentialStore
}

func (s *redisCredentialStore) Upsert(ctx context.Context, record Record) error {
	return mapCredentialStoreError(s.inner.Upsert(ctx, encodeStoredRecord(record)))
}

func (s *redisCredentialStore) Find(ctx context.Context, username string) (Record, error) {
	stored, err := s.inner.Find(ctx, username)
	if err != nil {
		return Record{}, mapCredentialStoreError(err)
	}
	return decodeStoredRecord(stored)
}

func (s *redisCredentialStore) Replace(ctx context.Context, username, expectedVerifier string, next Record) error {
	return mapCredentialStoreError(s.inner.Replace(ctx, username, expectedVerifier, encodeStoredRecord(next)))
}

func (s *redisCredentialStore) ListAll(ctx context.Context) ([]Record, error) {
	stored, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, mapCredentialStoreError(err)
	}

	records := make([]Record, 0, len(stored))
	for _, sr := range stored {
		record, err := decodeStoredRecord(sr)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func encodeStoredRecord(record Record) *stores.CredentialRecord {
	return &stores.CredentialRecord{
		ID:        record.ID,
		Username:  record.Username,
		Verifier:  record.Verifier,
		CreatedAt: record.CreatedAt.Unix(),
		Policy:    policy.EncodeSnapshot(record.Policy),
	}
}

func decodeStoredRecord(stored *stores.CredentialRecord) (Record, error) {
	pol, err := policy.ParseSnapshot(stored.Policy)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return Record{
		ID:        stored.ID,
		Username:  stored.Username,
		Verifier:  stored.Verifier,
		CreatedAt: time.Unix(stored.CreatedAt, 0).UTC(),
		Policy:    pol,
	}, nil
}

func mapCredentialStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, stores.ErrCredentialNotFound):
		return ErrRecordNotFound
	case errors.Is(err, stores.ErrCredentialConflict):
		return ErrRotationConflict
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
