package cloudwriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// CloudWriter buffers one object and publishes it on Close. Abort drops the
// buffer; a later Close publishes nothing.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
	Abort()
}

type CloudWriterFactory interface {
	NewWriter(ctx context.Context, bucket, objectPath string) (CloudWriter, error)
}

// UploadDir copies every regular file under dir to bucket, keyed by prefix
// plus the file's slash-separated path relative to dir. Files go up in
// lexical order. It returns the number of objects written.
func UploadDir(ctx context.Context, f CloudWriterFactory, bucket, dir, prefix string) (int, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("unable to list %s: %w", dir, err)
	}
	sort.Strings(files)

	for i, p := range files {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return i, err
		}
		key := path.Join(prefix, filepath.ToSlash(rel))
		if err := uploadFile(ctx, f, bucket, key, p); err != nil {
			return i, err
		}
	}
	return len(files), nil
}

func uploadFile(ctx context.Context, f CloudWriterFactory, bucket, key, p string) error {
	src, err := os.Open(p)
	if err != nil {
		return err
	}
	defer src.Close()
	return upload(ctx, f, bucket, key, src)
}

// upload streams r into one object. A read failure aborts the writer so no
// truncated object is published.
func upload(ctx context.Context, f CloudWriterFactory, bucket, key string, r io.Reader) error {
	w, err := f.NewWriter(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("unable to create writer for %s: %w", key, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Abort()
		return fmt.Errorf("unable to buffer %s: %w", key, err)
	}
	return w.Close()
}
