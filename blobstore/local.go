package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/hupe1980/meshgo/internal/mmap"
)

// LocalOptions contains configuration for a LocalStore.
type LocalOptions struct {
	// WriteBytesPerSecond throttles Put throughput so bulk snapshot
	// writes do not saturate shared disks. Zero disables throttling.
	WriteBytesPerSecond int
}

// LocalStore implements Store using the local file system. Reads are
// memory-mapped, which is the cheapest option for the random access
// patterns of partial snapshot loads.
type LocalStore struct {
	root    string
	limiter *rate.Limiter
}

// NewLocalStore creates a LocalStore rooted at the given directory,
// creating it if needed.
func NewLocalStore(root string, optFns ...func(o *LocalOptions)) (*LocalStore, error) {
	opts := LocalOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.WriteBytesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.WriteBytesPerSecond), opts.WriteBytesPerSecond)
	}

	return &LocalStore{root: root, limiter: limiter}, nil
}

// Put writes a blob atomically via a temp file and rename.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.throttle(ctx, len(data)); err != nil {
		return err
	}

	path := filepath.Join(s.root, name)
	tmp, err := os.CreateTemp(s.root, ".put-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// throttle reserves n bytes of write budget, waiting in burst-sized
// chunks so a single large blob cannot exceed the limiter's burst.
func (s *LocalStore) throttle(ctx context.Context, n int) error {
	if s.limiter.Limit() == rate.Inf {
		return nil
	}
	burst := s.limiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := s.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Open opens a blob for reading via mmap.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	m, err := mmap.Open(filepath.Join(s.root, name))
	if err != nil {
		return nil, err
	}
	return &localBlob{m: m}, nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.root, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List returns the names of all blobs with the given prefix.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".put-") {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

type localBlob struct {
	m *mmap.File
}

func (b *localBlob) ReadAt(p []byte, off int64) (int, error) {
	return b.m.ReadAt(p, off)
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return int64(len(b.m.Data))
}

func (b *localBlob) Bytes() ([]byte, error) {
	return b.m.Data, nil
}
