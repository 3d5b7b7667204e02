package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicateName is returned when the unique index on (user_id, lower(name))
// rejects a client insert. The service pre-checks the name too, but the index
// is what closes the race between two concurrent creates.
var ErrDuplicateName = errors.New("client name already exists")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
