package database

import (
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Constraint int

const (
	ConstraintNone Constraint = iota
	ConstraintUnique
	ConstraintForeignKey
	ConstraintCheck
)

func (c Constraint) String() string {
	switch c {
	case ConstraintUnique:
		return "unique"
	case ConstraintForeignKey:
		return "foreign_key"
	case ConstraintCheck:
		return "check"
	default:
		return "none"
	}
}

// ClassifyConstraint reports which integrity constraint, if any, err violated.
func ClassifyConstraint(err error) Constraint {
	if err == nil {
		return ConstraintNone
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ConstraintUnique
		case "23503":
			return ConstraintForeignKey
		case "23514":
			return ConstraintCheck
		}
		return ConstraintNone
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ConstraintUnique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ConstraintForeignKey
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return ConstraintCheck
		}
	}

	return ConstraintNone
}
