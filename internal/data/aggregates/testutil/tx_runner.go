package testutil

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/farm-catalog-backend/internal/data/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/dbctx"
)

var errInjectedRollback = errors.New("injected rollback")

// InjectedTxRunner is a test helper for aggregate integration tests.
// It supports rollback/failure injection. When DB is set the body runs in a
// real transaction that is rolled back whenever a failure is injected.
type InjectedTxRunner struct {
	mu sync.Mutex

	DB *gorm.DB

	FailBegin      error
	FailBeforeBody error
	FailCommit     error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failBeforeBody := r.FailBeforeBody
	failCommit := r.FailCommit
	db := r.DB
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	if failBeforeBody != nil {
		r.count(&r.RollbackCalls)
		return failBeforeBody
	}
	if fn == nil {
		r.count(&r.CommitCalls)
		return nil
	}

	var err error
	if db == nil {
		err = fn(dbctx.Context{Ctx: ctx})
		if err == nil && failCommit != nil {
			err = failCommit
		}
	} else {
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := fn(dbctx.Context{Ctx: ctx, Tx: tx}); err != nil {
				return err
			}
			if failCommit != nil {
				return errors.Join(errInjectedRollback, failCommit)
			}
			return nil
		})
	}
	if err != nil {
		r.count(&r.RollbackCalls)
		return err
	}
	r.count(&r.CommitCalls)
	return nil
}

func (r *InjectedTxRunner) count(n *int) {
	r.mu.Lock()
	*n++
	r.mu.Unlock()
}
