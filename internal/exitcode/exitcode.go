// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task or day).
	UserError = 1

	// AuthError indicates a role-authorization or configuration error.
	AuthError = 2

	// RemoteError indicates the remote document store failed a call.
	RemoteError = 3
)
