// Package calendar wraps the Google Calendar API for calctl.
//
// A Client is built per account from the stored OAuth material and shapes
// requests for the operations the CLI exposes: calendar and ACL listing,
// event CRUD, and free/busy queries. The Cache memoizes one Client per
// account email for the lifetime of the process.
//
// Event updates are read-modify-write: the current event is fetched, only the
// caller-supplied fields are overlaid, and the merged representation is
// submitted. A concurrent external modification between the read and the
// write can be clobbered; this is an accepted limitation of the tool.
package calendar
