package core

// error_messages.go maps technical errors to coded messages for operators.
//
// # Error Codes Reference
//
// When a run fails, the CLI prints the mapped message and code next to the
// technical error. Codes are grouped by category:
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key: A record with this ID already exists
//	        Action: Remove the duplicate id from the tribe or profession file
//	        SQLSTATE 23505; patterns: "duplicate key", "unique constraint failed"
//
//	DB002 - Not null: A required column was empty
//	        Action: Check the seed file for empty required values
//	        SQLSTATE 23502; patterns: "not null constraint", "violates not-null"
//
//	DB003 - Foreign key: Referenced record does not exist
//	        Action: Ensure foreign key checks can be suspended for the session
//	        SQLSTATE 23503; patterns: "foreign key constraint"
//
//	DB004 - Connection refused: Unable to connect to database
//	        Action: Check DATABASE_URL and that the database is running
//	        Patterns: "connection refused"
//
//	DB005 - Connection reset: Database connection was interrupted
//	        Action: Please try again
//	        Patterns: "connection reset"
//
//	DB006 - Busy: Database is locked by another writer
//	        Action: Stop other writers and try again
//	        Patterns: "database is locked", "sqlite_busy"
//
//	DB007 - Deadlock: Database was busy with conflicting operations
//	        Action: Please try again
//	        SQLSTATE 40P01; patterns: "deadlock"
//
//	DB008 - Missing schema: Catalog tables do not exist
//	        Action: Run "seeder migrate" or set DB_AUTO_MIGRATE=true
//	        SQLSTATE 42P01; patterns: "no such table"
//
//	DB009 - Permission denied: The database user cannot suspend foreign key checks
//	        Action: Seed with a superuser role (session_replication_role needs it)
//	        SQLSTATE 42501; patterns: "permission denied"
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Source read: A seed file could not be read
//	         Action: Check file permissions or bucket access
//	         Patterns: "read source"
//
//	SRC002 - Manifest: The seed manifest is invalid
//	         Action: Fix the YAML manifest named by SEED_MANIFEST
//	         Patterns: "manifest"
//
// # Run Errors (RUN001-RUN099)
//
//	RUN001 - Cancelled: The run was interrupted
//	         Action: Start a new run when ready
//
//	RUN002 - Timeout: The run timed out
//	         Action: Please try again
//
//	RUN003 - Busy: Another seeding run is in progress
//	         Action: Wait for the active run to finish
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Check the logs for the technical error
//
// # Pattern Matching
//
// PostgreSQL errors are matched by SQLSTATE first. Other errors are matched
// case-insensitively using strings.Contains; the first matching pattern wins.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserMessage provides operator-facing error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgDuplicate = UserMessage{
		Message: "A record with this ID already exists",
		Action:  "Remove the duplicate id from the tribe or profession file",
		Code:    "DB001",
	}
	msgNotNull = UserMessage{
		Message: "A required column was empty",
		Action:  "Check the seed file for empty required values",
		Code:    "DB002",
	}
	msgForeignKey = UserMessage{
		Message: "Referenced record does not exist",
		Action:  "Ensure foreign key checks can be suspended for the session",
		Code:    "DB003",
	}
	msgDeadlock = UserMessage{
		Message: "Database was busy with conflicting operations",
		Action:  "Please try again",
		Code:    "DB007",
	}
	msgNoSchema = UserMessage{
		Message: "Catalog tables do not exist",
		Action:  `Run "seeder migrate" or set DB_AUTO_MIGRATE=true`,
		Code:    "DB008",
	}
	msgPermission = UserMessage{
		Message: "The database user cannot suspend foreign key checks",
		Action:  "Seed with a superuser role (session_replication_role needs it)",
		Code:    "DB009",
	}
	msgCancelled = UserMessage{
		Message: "The run was interrupted",
		Action:  "Start a new run when ready",
		Code:    "RUN001",
	}
	msgTimeout = UserMessage{
		Message: "The run timed out",
		Action:  "Please try again",
		Code:    "RUN002",
	}
	msgRunInProgress = UserMessage{
		Message: "Another seeding run is in progress",
		Action:  "Wait for the active run to finish",
		Code:    "RUN003",
	}
)

// sqlStateMessages maps PostgreSQL SQLSTATE codes to messages.
var sqlStateMessages = map[string]UserMessage{
	"23505": msgDuplicate,
	"23502": msgNotNull,
	"23503": msgForeignKey,
	"40P01": msgDeadlock,
	"42P01": msgNoSchema,
	"42501": msgPermission,
}

// errorPattern defines a pattern to match and its corresponding message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to messages.
// More specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{pattern: "duplicate key", msg: msgDuplicate},
	{pattern: "unique constraint failed", msg: msgDuplicate},
	{pattern: "not null constraint", msg: msgNotNull},
	{pattern: "violates not-null", msg: msgNotNull},
	{pattern: "foreign key constraint", msg: msgForeignKey},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Check DATABASE_URL and that the database is running",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "Database is locked by another writer",
			Action:  "Stop other writers and try again",
			Code:    "DB006",
		},
	},
	{
		pattern: "sqlite_busy",
		msg: UserMessage{
			Message: "Database is locked by another writer",
			Action:  "Stop other writers and try again",
			Code:    "DB006",
		},
	},
	{pattern: "deadlock", msg: msgDeadlock},
	{pattern: "no such table", msg: msgNoSchema},
	{pattern: "permission denied", msg: msgPermission},
	{
		pattern: "read source",
		msg: UserMessage{
			Message: "A seed file could not be read",
			Action:  "Check file permissions or bucket access",
			Code:    "SRC001",
		},
	},
	{
		pattern: "manifest",
		msg: UserMessage{
			Message: "The seed manifest is invalid",
			Action:  "Fix the YAML manifest named by SEED_MANIFEST",
			Code:    "SRC002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logs for the technical error",
	Code:    "ERR000",
}

// MapError converts a technical error to an operator-facing message.
//
// Example:
//
//	err := errors.New("UNIQUE constraint failed: tribes.id")
//	msg := MapError(err)
//	// msg.Code == "DB001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if msg, ok := sqlStateMessages[pgErr.Code]; ok {
			return msg
		}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return msgCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	case errors.Is(err, ErrRunInProgress):
		return msgRunInProgress
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
