// Package models defines the client-side data shapes of ArcaneDex: the
// remote creature payloads, the locally cached catalog rows, the session
// snapshot and the pagination cursor.
package models
