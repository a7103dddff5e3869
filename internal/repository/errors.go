// Package repository defines error kinds shared by the data access layer.
// Repositories wrap the underlying driver error together with one of these
// sentinels so that handlers can pick an HTTP status with errors.Is without
// looking at driver specific messages.
package repository

import "errors"

// ErrConnection is returned when the store is unreachable, misconfigured or
// the schema cannot be ensured while connecting.
var ErrConnection = errors.New("connection error")

// ErrStore is returned when a query or insert cannot be executed.  Handlers
// should translate this into a 5xx response.
var ErrStore = errors.New("store error")

// ErrNotConnected is wrapped into ErrStore when an operation runs before
// Connect succeeded or after Disconnect.
var ErrNotConnected = errors.New("store not connected")
