// Package repository defines data access for the venue tables and the
// error values shared by all repositories. These sentinel values allow
// handlers to distinguish between different failure scenarios: ErrNotFound
// maps to HTTP 404, ErrConflict to HTTP 409.
package repository

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an operation cannot proceed because of
// existing state, such as approving seats that are already reserved.
var ErrConflict = errors.New("conflict")

// ErrDuplicate is returned when an insert violates a unique key.
var ErrDuplicate = errors.New("duplicate entry")

// SeatConflictError lists the seat identifiers that are already reserved.
// It matches ErrConflict with errors.Is.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already reserved: %s", strings.Join(e.Seats, ", "))
}

// Is lets errors.Is(err, ErrConflict) match.
func (e *SeatConflictError) Is(target error) bool { return target == ErrConflict }

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
