package repository

import "strings"

// MySQL reports constraint violations by error number in the message.
// Matching on the number keeps the repos free of a driver-specific error
// type while still distinguishing the two cases we care about.

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062, raised by unique indexes and primary keys).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isFKViolation reports whether err is a MySQL foreign-key violation
// (error 1452, raised when a referenced row does not exist).
func isFKViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
