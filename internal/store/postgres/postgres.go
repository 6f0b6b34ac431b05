// Package postgres implements the repositories on top of PostgreSQL.
package postgres

import (
	"database/sql"
	"errors"

	"github.com/blood-heros/apiserver/internal/store"
	"github.com/blood-heros/apiserver/types"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

func newID() string {
	return uuid.NewString()
}

func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrInvalidID
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return store.ErrDuplicate
	}
	return err
}

// updateResult converts an UPDATE outcome. PostgreSQL reports rows matched,
// so modified and matched counts are equal.
func updateResult(result sql.Result) (types.UpdateResult, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return types.UpdateResult{}, err
	}
	if affected == 0 {
		return types.UpdateResult{}, store.ErrNotFound
	}
	return types.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  affected,
		ModifiedCount: affected,
	}, nil
}

func deleteResult(result sql.Result) (types.DeleteResult, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return types.DeleteResult{}, err
	}
	if affected == 0 {
		return types.DeleteResult{}, store.ErrNotFound
	}
	return types.DeleteResult{Acknowledged: true, DeletedCount: affected}, nil
}

type scanner interface {
	Scan(dest ...any) error
}
