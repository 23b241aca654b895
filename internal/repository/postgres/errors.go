package postgres

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

// pqError returns the *pq.Error in err's chain carrying code, if any.
func pqError(err error, code pq.ErrorCode) (*pq.Error, bool) {
	var perr *pq.Error
	if errors.As(err, &perr) && perr.Code == code {
		return perr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	_, ok := pqError(err, uniqueViolation)
	return ok
}

// violatesForeignKey reports whether err is a foreign key violation on a
// constraint named after column, e.g. "user_join_conferences_conference_id_fkey".
func violatesForeignKey(err error, column string) bool {
	perr, ok := pqError(err, foreignKeyViolation)
	if !ok {
		return false
	}
	return strings.HasSuffix(perr.Constraint, "_"+column+"_fkey")
}

func isForeignKeyViolation(err error) bool {
	_, ok := pqError(err, foreignKeyViolation)
	return ok
}
