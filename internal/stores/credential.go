package stores

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
)

const (
	credentialRecordVersionV1 = 1
	maxFieldLength            = 65535
)

var (
	ErrCredentialNotFound    = errors.New("credential record not found")
	ErrCredentialConflict    = errors.New("credential record changed concurrently")
	ErrCredentialUnavailable = errors.New("credential redis unavailable")
)

// CredentialRecord is the persisted form of one username's credential.
// CreatedAt is a Unix timestamp in seconds; Policy is the versioned policy
// snapshot text.
type CredentialRecord struct {
	ID        string
	Username  string
	Verifier  string
	CreatedAt int64
	Policy    string
}

// CredentialStore persists credential records in Redis under
// "<prefix>:<username>" keys with no TTL. Records are stored as versioned
// binary blobs; Replace uses a WATCH/MULTI transaction keyed on the prior
// verifier so a rotation either fully lands or leaves the record untouched.
type CredentialStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewCredentialStore returns a store using the given key prefix, defaulting
// to "cred".
func NewCredentialStore(redisClient redis.UniversalClient, prefix string) *CredentialStore {
	if prefix == "" {
		prefix = "cred"
	}
	return &CredentialStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *CredentialStore) key(username string) string {
	return s.prefix + ":" + username
}

// Upsert writes the record, overwriting any existing record for the same
// username.
func (s *CredentialStore) Upsert(ctx context.Context, record *CredentialRecord) error {
	encoded, err := encodeCredentialRecord(record)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(record.Username), encoded, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCredentialUnavailable, err)
	}

	return nil
}

// Find returns the record for username or [ErrCredentialNotFound].
func (s *CredentialStore) Find(ctx context.Context, username string) (*CredentialRecord, error) {
	data, err := s.redis.Get(ctx, s.key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCredentialUnavailable, err)
	}

	return decodeCredentialRecord(data)
}

// ListAll scans every record under the store prefix. Keys that disappear
// between the scan and the read are skipped.
func (s *CredentialStore) ListAll(ctx context.Context) ([]*CredentialRecord, error) {
	var records []*CredentialRecord

	iter := s.redis.Scan(ctx, 0, s.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.redis.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrCredentialUnavailable, err)
		}

		record, err := decodeCredentialRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentialUnavailable, err)
	}

	return records, nil
}

// Replace overwrites the record for username only while its stored verifier
// still equals expectedVerifier. A missing record yields
// [ErrCredentialNotFound]; a verifier that moved underneath the caller
// yields [ErrCredentialConflict]. The transaction retries on contention.
func (s *CredentialStore) Replace(
	ctx context.Context,
	username string,
	expectedVerifier string,
	next *CredentialRecord,
) error {
	const maxRetries = 4
	key := s.key(username)

	encoded, err := encodeCredentialRecord(next)
	if err != nil {
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				return err
			}

			current, err := decodeCredentialRecord(data)
			if err != nil {
				return err
			}
			if current.Verifier != expectedVerifier {
				return ErrCredentialConflict
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, encoded, 0)
				return nil
			})
			return err
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			switch {
			case errors.Is(err, redis.Nil):
				return ErrCredentialNotFound
			case errors.Is(err, ErrCredentialConflict):
				return ErrCredentialConflict
			default:
				return fmt.Errorf("%w: %v", ErrCredentialUnavailable, err)
			}
		}

		return nil
	}

	return ErrCredentialConflict
}

func encodeCredentialRecord(record *CredentialRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(credentialRecordVersionV1)

	if err := binary.Write(&buf, binary.BigEndian, record.CreatedAt); err != nil {
		return nil, err
	}

	for _, field := range []string{record.ID, record.Username, record.Verifier, record.Policy} {
		if len(field) > maxFieldLength {
			return nil, errors.New("credential record field too long")
		}
		if err := binary.Write(&buf, binary.BigEndian, uint16(len(field))); err != nil {
			return nil, err
		}
		buf.WriteString(field)
	}

	return buf.Bytes(), nil
}

func decodeCredentialRecord(data []byte) (*CredentialRecord, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != credentialRecordVersionV1 {
		return nil, errors.New("invalid credential record version")
	}

	record := &CredentialRecord{}
	if err := binary.Read(reader, binary.BigEndian, &record.CreatedAt); err != nil {
		return nil, err
	}

	for _, field := range []*string{&record.ID, &record.Username, &record.Verifier, &record.Policy} {
		var length uint16
		if err := binary.Read(reader, binary.BigEndian, &length); err != nil {
			return nil, err
		}

		raw := make([]byte, length)
		if _, err := io.ReadFull(reader, raw); err != nil {
			return nil, err
		}
		*field = string(raw)
	}

	return record, nil
}
