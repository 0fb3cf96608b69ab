package offer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrPreviewNotFound is returned for unknown, released or foreign handles.
var ErrPreviewNotFound = errors.New("preview not found")

// Preview is a rendered offer held for inline display.
type Preview struct {
	Handle     string
	DocumentNo string
	Language   Language
	Filename   string
}

// PreviewStore keeps rendered PDFs in Redis behind short-lived handles.
// Each owner holds at most one handle per document: acquiring a new one
// releases the previous one first. The TTL removes handles whose owner
// went away without releasing them.
type PreviewStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreviewStore constructs a PreviewStore.
func NewPreviewStore(client *redis.Client, ttl time.Duration) *PreviewStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &PreviewStore{client: client, ttl: ttl}
}

func previewKey(handle string) string {
	return "preview:" + handle
}

func ownerKey(owner, documentNo string) string {
	return "preview:owner:" + owner + ":" + documentNo
}

// acquireRetries bounds optimistic retries when renders race on one owner key.
const acquireRetries = 10

// Acquire stores pdf under a new handle for owner, releasing any handle
// the owner already held for the same document. The swap runs under
// WATCH on the owner key so concurrent renders cannot orphan a handle.
func (s *PreviewStore) Acquire(ctx context.Context, owner string, res Result, lang Language) (Preview, error) {
	p := Preview{Handle: uuid.NewString(), DocumentNo: res.DocumentNo, Language: lang, Filename: res.Filename}
	key := ownerKey(owner, p.DocumentNo)
	swap := func(tx *redis.Tx) error {
		previous, err := tx.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if previous != "" {
				pipe.Del(ctx, previewKey(previous))
			}
			pipe.HSet(ctx, previewKey(p.Handle), map[string]any{
				"owner":    owner,
				"document": p.DocumentNo,
				"lang":     string(lang),
				"filename": p.Filename,
				"pdf":      res.PDF,
			})
			pipe.Expire(ctx, previewKey(p.Handle), s.ttl)
			pipe.Set(ctx, key, p.Handle, s.ttl)
			return nil
		})
		return err
	}
	for i := 0; i < acquireRetries; i++ {
		err := s.client.Watch(ctx, swap, key)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return Preview{}, fmt.Errorf("store preview: %w", err)
		}
	}
	return Preview{}, fmt.Errorf("store preview: %w", redis.TxFailedErr)
}

// Current returns the handle owner holds for documentNo.
func (s *PreviewStore) Current(ctx context.Context, owner, documentNo string) (Preview, error) {
	handle, err := s.client.Get(ctx, ownerKey(owner, documentNo)).Result()
	if errors.Is(err, redis.Nil) {
		return Preview{}, ErrPreviewNotFound
	}
	if err != nil {
		return Preview{}, fmt.Errorf("load preview handle: %w", err)
	}
	meta, err := s.client.HMGet(ctx, previewKey(handle), "owner", "document", "lang", "filename").Result()
	if err != nil {
		return Preview{}, fmt.Errorf("load preview: %w", err)
	}
	if str(meta[0]) != owner {
		return Preview{}, ErrPreviewNotFound
	}
	return Preview{Handle: handle, DocumentNo: str(meta[1]), Language: Language(str(meta[2])), Filename: str(meta[3])}, nil
}

// PDF returns the bytes behind handle if owner holds it.
func (s *PreviewStore) PDF(ctx context.Context, owner, handle string) (Preview, []byte, error) {
	vals, err := s.client.HGetAll(ctx, previewKey(handle)).Result()
	if err != nil {
		return Preview{}, nil, fmt.Errorf("load preview: %w", err)
	}
	if len(vals) == 0 || vals["owner"] != owner {
		return Preview{}, nil, ErrPreviewNotFound
	}
	p := Preview{Handle: handle, DocumentNo: vals["document"], Language: Language(vals["lang"]), Filename: vals["filename"]}
	return p, []byte(vals["pdf"]), nil
}

// Release drops the handle owner holds for documentNo, if any.
func (s *PreviewStore) Release(ctx context.Context, owner, documentNo string) error {
	handle, err := s.client.GetDel(ctx, ownerKey(owner, documentNo)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("release preview: %w", err)
	}
	if err := s.client.Del(ctx, previewKey(handle)).Err(); err != nil {
		return fmt.Errorf("release preview: %w", err)
	}
	return nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
