package sequence

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

type BoltOptions struct {
	Path    string        `cfg:"path" validate:"required"`
	Bucket  string        `cfg:"bucket" def:"sequences"`
	Timeout time.Duration `cfg:"timeout" def:"1s"`
}

// BoltGenerator 嵌入式序列，每个序列是根 bucket 下的一个子 bucket，使用子 bucket 的 NextSequence
type BoltGenerator struct {
	db     *bbolt.DB
	bucket []byte
}

func NewBoltGeneratorWithOptions(options *BoltOptions) (*BoltGenerator, error) {
	if options == nil || options.Path == "" {
		return nil, errors.New("path is required")
	}
	bucket := options.Bucket
	if bucket == "" {
		bucket = "sequences"
	}
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}

	if err := os.MkdirAll(filepath.Dir(options.Path), 0755); err != nil {
		return nil, errors.Wrapf(err, "create directory for %s failed", options.Path)
	}
	db, err := bbolt.Open(options.Path, 0600, &bbolt.Options{Timeout: timeout})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt db %s failed", options.Path)
	}
	return &BoltGenerator{db: db, bucket: []byte(bucket)}, nil
}

func (g *BoltGenerator) Next(ctx context.Context, name string, minValue int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if name == "" {
		return 0, errors.New("sequence name is empty")
	}

	var value int64
	err := g.db.Update(func(tx *bbolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(g.bucket)
		if err != nil {
			return err
		}
		b, err := root.CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
		n, err := b.NextSequence()
		if err != nil {
			return err
		}
		value = int64(n)
		if value < minValue {
			value = minValue
			return b.SetSequence(uint64(minValue))
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "bolt next value of sequence %s failed", name)
	}
	return value, nil
}

func (g *BoltGenerator) Close() error {
	return g.db.Close()
}
