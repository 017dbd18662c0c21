// Package chunk persists chunks as JSON blobs with per-user and per-document
// membership sets.
package chunk

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/beadyks/studysearch/internal/domain"
	domchunk "github.com/beadyks/studysearch/internal/domain/chunk"
)

// store is the consumer interface for chunk persistence (ISP).
type store interface {
	MGet(ctx context.Context, keys ...string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, keys ...string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the chunk store consumed by the search and ingest services.
type Repo struct {
	store store
}

// New creates a chunk repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

func chunkKey(userID, chunkID string) string {
	return domain.KeyPrefix + "chunk:" + userID + ":" + chunkID
}

func userSetKey(userID string) string {
	return domain.KeyPrefix + "user:" + userID + ":chunks"
}

func docSetKey(userID, documentID string) string {
	return domain.KeyPrefix + "user:" + userID + ":doc:" + documentID + ":chunks"
}

// Put stores a chunk and registers it in the user and document sets.
func (r *Repo) Put(ctx context.Context, c domchunk.Chunk) error {
	data, err := json.Marshal(toDTO(c))
	if err != nil {
		return fmt.Errorf("marshal chunk %s: %w", c.ID(), err)
	}

	if err := r.store.Set(ctx, chunkKey(c.UserID(), c.ID()), data); err != nil {
		return fmt.Errorf("store chunk %s: %w", c.ID(), err)
	}
	if err := r.store.SAdd(ctx, userSetKey(c.UserID()), c.ID()); err != nil {
		return fmt.Errorf("register chunk %s for user: %w", c.ID(), err)
	}
	if err := r.store.SAdd(ctx, docSetKey(c.UserID(), c.DocumentID()), c.ID()); err != nil {
		return fmt.Errorf("register chunk %s for document: %w", c.ID(), err)
	}
	return nil
}

// ListByUser returns every chunk of a user, ordered by chunk id.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domchunk.Chunk, error) {
	return r.listSet(ctx, userID, userSetKey(userID))
}

// ListByDocument returns every chunk of one document, ordered by chunk id.
func (r *Repo) ListByDocument(ctx context.Context, userID, documentID string) ([]domchunk.Chunk, error) {
	return r.listSet(ctx, userID, docSetKey(userID, documentID))
}

// DeleteDocument removes a document's chunks and their set memberships.
func (r *Repo) DeleteDocument(ctx context.Context, userID, documentID string) error {
	setKey := docSetKey(userID, documentID)

	ids, err := r.store.SMembers(ctx, setKey)
	if err != nil {
		return fmt.Errorf("list document %s chunks: %w", documentID, err)
	}

	if len(ids) > 0 {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = chunkKey(userID, id)
		}
		if err := r.store.Del(ctx, keys...); err != nil {
			return fmt.Errorf("delete document %s chunks: %w", documentID, err)
		}
		if err := r.store.SRem(ctx, userSetKey(userID), ids...); err != nil {
			return fmt.Errorf("unregister document %s chunks: %w", documentID, err)
		}
	}

	if err := r.store.Del(ctx, setKey); err != nil {
		return fmt.Errorf("delete document %s set: %w", documentID, err)
	}
	return nil
}

func (r *Repo) listSet(ctx context.Context, userID, setKey string) ([]domchunk.Chunk, error) {
	ids, err := r.store.SMembers(ctx, setKey)
	if err != nil {
		return nil, fmt.Errorf("list chunk ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// SMEMBERS order is unspecified; sort for deterministic scans.
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = chunkKey(userID, id)
	}

	blobs, err := r.store.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("fetch chunks: %w", err)
	}

	chunks := make([]domchunk.Chunk, 0, len(blobs))
	for _, blob := range blobs {
		if blob == nil {
			// Stale set member; the blob was deleted out of band.
			continue
		}
		var d chunkDTO
		if err := json.Unmarshal(blob, &d); err != nil {
			// One corrupt record must not deny the whole scan.
			continue
		}
		chunks = append(chunks, toDomain(d))
	}
	return chunks, nil
}
