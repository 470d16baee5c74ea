// Package errors provides the error types shared across wsbump.
//
//   - ExitError: carries the process exit code up to cmd.Execute
//   - CommandError: an external command (workspace info, outdated) that could
//     not produce usable output
//   - UnknownWorkspaceError: a report row names a workspace the resolver never saw
//
// Exit codes:
//   - ExitSuccess (0): run completed, including "nothing outdated"
//   - ExitFailure (2): any unhandled failure aborted the run
//   - ExitConfigError (3): configuration could not be loaded or validated
package errors
