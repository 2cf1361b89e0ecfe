// Package terminal owns the raw-mode, alternate-screen session the
// renderer draws into, plus keyboard decoding and resize notification.
//
// Restore is idempotent and attempts every teardown step even when an
// earlier one fails; the failures are joined and returned.
package terminal
