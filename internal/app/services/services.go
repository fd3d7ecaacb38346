// Package services contains the business logic between controllers and repositories
package services

import (
	"github.com/studentdesk/studentdesk/internal/pkg/apperrors"
	"github.com/studentdesk/studentdesk/internal/pkg/dberrors"
)

// classifyStoreError maps low-level store failures onto the application error
// taxonomy so handlers can answer 503 for an unreachable server and give a
// remediation hint when the schema bootstrap never ran.
func classifyStoreError(err error) error {
	switch {
	case dberrors.IsConnectionError(err):
		return apperrors.NewCustomError(apperrors.ErrStoreUnavailable,
			"Database connection failed. Please make sure PostgreSQL is running.")
	case dberrors.IsUndefinedTable(err), dberrors.IsDatabaseMissing(err):
		return apperrors.NewCustomError(apperrors.ErrSchemaMissing,
			"Database table not found. Please restart the server to initialize the database.")
	default:
		return err
	}
}
