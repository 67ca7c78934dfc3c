package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const idField = "id"

// maxIDAttempts bounds how often Add asks for a fresh id when the generator
// returns one already present in the collection.
const maxIDAttempts = 8

// Record is one element of a stored collection: a flat JSON object that
// always carries a string "id".
type Record map[string]json.RawMessage

// Fields are caller-supplied values for Add and Update.
type Fields map[string]any

func (r Record) ID() string {
	var id string
	_, _ = r.Field(idField, &id)
	return id
}

// Field decodes a single field into v. It reports false if the field is absent.
func (r Record) Field(name string, v any) (bool, error) {
	raw, ok := r[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode field %s: %w", name, err)
	}
	return true, nil
}

// Decode unmarshals the whole record into v.
func (r Record) Decode(v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("record marshal: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("record decode: %w", err)
	}
	return nil
}

func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// merge overlays fields onto r. The id is immutable and silently kept.
func (r Record) merge(fields Fields) error {
	return r.overlay(fields, false)
}

// mergeAll is merge including the id, for records rebuilt from typed values.
func (r Record) mergeAll(fields Fields) error {
	return r.overlay(fields, true)
}

func (r Record) overlay(fields Fields, withID bool) error {
	for k, v := range fields {
		if k == idField && !withID {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode field %s: %w", k, err)
		}
		r[k] = raw
	}
	return nil
}

// EncodeFields turns a struct (or any JSON object value) into Fields.
func EncodeFields(v any) (Fields, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("fields marshal: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fields decode: %w", err)
	}
	out := make(Fields, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out, nil
}

type RecordStore struct {
	medium Medium
	locks  *keyLocks
	newID  func() string
	logger *zap.Logger
}

type StoreOption func(*RecordStore)

// WithIDFunc replaces the uuid generator.
func WithIDFunc(f func() string) StoreOption {
	return func(s *RecordStore) { s.newID = f }
}

func WithLogger(l *zap.Logger) StoreOption {
	return func(s *RecordStore) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewRecordStore(m Medium, opts ...StoreOption) *RecordStore {
	s := &RecordStore{
		medium: m,
		locks:  newKeyLocks(),
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the collection under key. Absent and undecodable collections
// read as empty; only a medium failure is returned as an error.
func (s *RecordStore) Get(ctx context.Context, key string) ([]Record, error) {
	return s.load(ctx, key)
}

// Set replaces the whole collection under key.
func (s *RecordStore) Set(ctx context.Context, key string, recs []Record) error {
	return s.Mutate(ctx, key, func([]Record) ([]Record, error) {
		return recs, nil
	})
}

// Add stores fields as a new record with a freshly assigned id.
func (s *RecordStore) Add(ctx context.Context, key string, fields Fields) (Record, error) {
	rec := Record{}
	if err := rec.merge(fields); err != nil {
		return nil, err
	}

	var out Record
	err := s.Mutate(ctx, key, func(recs []Record) ([]Record, error) {
		id, err := s.uniqueID(recs)
		if err != nil {
			return nil, err
		}
		rawID, _ := json.Marshal(id)
		rec[idField] = rawID
		out = rec.clone()
		return append(recs, rec), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges fields into the record with the given id.
func (s *RecordStore) Update(ctx context.Context, key, id string, fields Fields) (Record, error) {
	var out Record
	err := s.Mutate(ctx, key, func(recs []Record) ([]Record, error) {
		for i := range recs {
			if recs[i].ID() != id {
				continue
			}
			next := recs[i].clone()
			if err := next.merge(fields); err != nil {
				return nil, err
			}
			recs[i] = next
			out = next.clone()
			return recs, nil
		}
		return nil, notFound(key, id)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RecordStore) Delete(ctx context.Context, key, id string) error {
	return s.Mutate(ctx, key, func(recs []Record) ([]Record, error) {
		for i := range recs {
			if recs[i].ID() == id {
				return append(recs[:i], recs[i+1:]...), nil
			}
		}
		return nil, notFound(key, id)
	})
}

// Mutate runs one read-modify-write cycle of the collection under key while
// holding that key's lock. If fn returns an error nothing is written; an
// ErrNoChange from fn also skips the write but is not reported. Media that
// implement Updater run the cycle atomically against other processes too.
//
// ctx only bounds the wait for the lock: once the cycle starts it runs to
// completion even if the caller gives up.
func (s *RecordStore) Mutate(ctx context.Context, key string, fn func(recs []Record) ([]Record, error)) error {
	release, err := s.locks.acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()

	ctx = context.WithoutCancel(ctx)
	if u, ok := s.medium.(Updater); ok {
		return s.mutateAtomic(ctx, u, key, fn)
	}

	recs, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	next, err := fn(recs)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.save(ctx, key, next)
}

func (s *RecordStore) mutateAtomic(ctx context.Context, u Updater, key string, fn func(recs []Record) ([]Record, error)) error {
	var fnErr error
	err := u.Update(ctx, key, func(raw []byte, found bool) ([]byte, error) {
		next, err := fn(s.decodeCollection(key, raw, found))
		if err != nil {
			fnErr = err
			return nil, err
		}
		data, err := s.encodeCollection(key, next)
		fnErr = err
		return data, err
	})
	switch {
	case errors.Is(fnErr, ErrNoChange):
		return nil
	case fnErr != nil:
		return fnErr
	case err != nil:
		return &IOError{Op: "update", Key: key, Err: err}
	}
	return nil
}

// Drop removes every given key from the medium.
func (s *RecordStore) Drop(ctx context.Context, keys ...string) error {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	var releases []func()
	defer func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}()
	for _, k := range sorted {
		release, err := s.locks.acquire(ctx, k)
		if err != nil {
			return err
		}
		releases = append(releases, release)
	}

	if err := s.medium.Delete(context.WithoutCancel(ctx), sorted...); err != nil {
		return &IOError{Op: "delete", Key: fmt.Sprint(sorted), Err: err}
	}
	return nil
}

func (s *RecordStore) load(ctx context.Context, key string) ([]Record, error) {
	raw, found, err := s.medium.Read(ctx, key)
	if err != nil {
		return nil, &IOError{Op: "read", Key: key, Err: err}
	}
	return s.decodeCollection(key, raw, found), nil
}

// decodeCollection never fails: absent, empty and unreadable values all
// decode to an empty collection.
func (s *RecordStore) decodeCollection(key string, raw []byte, found bool) []Record {
	if !found || len(bytes.TrimSpace(raw)) == 0 {
		return []Record{}
	}

	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		s.logger.Warn("treating unreadable collection as empty",
			zap.String("key", key),
			zap.Error(errors.Join(ErrSerialization, err)))
		return []Record{}
	}

	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (s *RecordStore) encodeCollection(key string, recs []Record) ([]byte, error) {
	if recs == nil {
		recs = []Record{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("encode collection %q: %w", key, err)
	}
	return data, nil
}

func (s *RecordStore) save(ctx context.Context, key string, recs []Record) error {
	data, err := s.encodeCollection(key, recs)
	if err != nil {
		return err
	}
	if err := s.medium.Write(ctx, key, data); err != nil {
		return &IOError{Op: "write", Key: key, Err: err}
	}
	return nil
}

func (s *RecordStore) uniqueID(recs []Record) (string, error) {
	taken := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		taken[r.ID()] = struct{}{}
	}
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, dup := taken[id]; !dup {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not assign a unique id after %d attempts", maxIDAttempts)
}
