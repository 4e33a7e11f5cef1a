package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// rowTally accumulates affected-row counts across the repositories
// sharing one unit of work.
type rowTally struct {
	n int64
}

func (t *rowTally) add(n int64) {
	if t != nil {
		t.n += n
	}
}

// UnitOfWork spans both catalog repositories over a single database
// transaction. Mutations performed through either repository become
// durable only when Commit is called; until then the transaction can be
// released with Rollback and nothing is retained.
//
// A unit of work is scoped to one request and must not be shared.
type UnitOfWork struct {
	tx         *gorm.DB
	products   ProductRepository
	categories CategoryRepository
	tally      *rowTally
	done       bool
}

// NewUnitOfWork begins a transaction and constructs both repositories
// on top of it.
func NewUnitOfWork(db *gorm.DB) (*UnitOfWork, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "begin transaction")
	}
	tally := &rowTally{}
	return &UnitOfWork{
		tx:         tx,
		products:   NewGormProductRepository(tx, tally),
		categories: NewGormCategoryRepository(tx, tally),
		tally:      tally,
	}, nil
}

// Products returns the product repository bound to this unit of work.
func (u *UnitOfWork) Products() ProductRepository {
	return u.products
}

// Categories returns the category repository bound to this unit of work.
func (u *UnitOfWork) Categories() CategoryRepository {
	return u.categories
}

// Commit makes all staged changes durable atomically and returns the
// total number of rows affected across both repositories.
func (u *UnitOfWork) Commit() (int64, error) {
	if u.done {
		return 0, errors.New("unit of work already finished")
	}
	if err := u.tx.Commit().Error; err != nil {
		return 0, err
	}
	u.done = true
	return u.tally.n, nil
}

// Rollback releases the transaction, discarding staged changes. It is a
// no-op after a successful Commit, so callers may defer it.
func (u *UnitOfWork) Rollback() {
	if u.done {
		return
	}
	u.done = true
	_ = u.tx.Rollback()
}
