// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/leitmotif/storage"
)

// Backend owns the BadgerDB handle shared by the repositories.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// BackendOption configures a Backend.
type BackendOption func(*Backend)

// WithLogger sets the logger used by the backend and by BadgerDB itself.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) BackendOption {
	return func(b *Backend) {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
	}
}

// slogAdapter routes BadgerDB's printf-style logging into slog.
type slogAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*slogAdapter)(nil)

func (a *slogAdapter) line(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

func (a *slogAdapter) Errorf(format string, args ...any)   { a.logger.Error(a.line(format, args)) }
func (a *slogAdapter) Warningf(format string, args ...any) { a.logger.Warn(a.line(format, args)) }
func (a *slogAdapter) Infof(format string, args ...any)    { a.logger.Info(a.line(format, args)) }
func (a *slogAdapter) Debugf(format string, args ...any)   { a.logger.Debug(a.line(format, args)) }

// ensureDir creates dir if needed and fails if the path exists but is not a directory.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// OpenBackend opens the score store in directory dir, creating it if needed.
// With inMemory set dir is ignored and nothing touches disk.
func OpenBackend(dir string, inMemory bool, opts ...BackendOption) (*Backend, error) {
	b := &Backend{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}

	dbOpts := badger.DefaultOptions(dir)
	if inMemory {
		dbOpts = badger.DefaultOptions("").WithInMemory(true)
	} else if err := ensureDir(dir); err != nil {
		return nil, err
	}
	dbOpts.Logger = &slogAdapter{logger: b.logger.With("component", "badger")}
	dbOpts.Compression = options.None

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	b.db = db
	b.logger.Debug("score store opened", "dir", dir, "inMemory", inMemory)
	return b, nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}

func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// txKey carries the write transaction opened by WithTransaction.
type txKey struct{}

// txFromContext returns the transaction WithTransaction stored in ctx, if any.
func txFromContext(ctx context.Context) (*badger.Txn, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txKey{}).(*badger.Txn)
	return tx, ok
}

// WithTx runs fn in the transaction carried by ctx, or in a new one. A new
// write transaction is committed when fn succeeds and discarded otherwise; a
// joined transaction is left to the WithTransaction call that opened it.
func (b *Backend) WithTx(ctx context.Context, fn func(tx *badger.Txn) error, isWrite bool) error {
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	if tx, ok := txFromContext(ctx); ok {
		return fn(tx)
	}

	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	if err := fn(tx); err != nil {
		return err
	}
	if !isWrite {
		return nil
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	return nil
}

// WithTransaction runs fn with a write transaction in its context. Repository
// calls made with that context share the transaction, which commits when fn
// returns nil and is discarded otherwise. A nested call joins the outer one.
func (b *Backend) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}
	return b.WithTx(ctx, func(tx *badger.Txn) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, true)
}
