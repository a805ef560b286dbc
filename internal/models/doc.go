// Package models defines the domain records shared by the storage and
// session layers.
//
// # Sessions
//
// An event session is one organizer's working set: the participant list,
// the draw history and the current group partition. Participants are plain
// name strings. The same name may appear more than once; duplicates are a
// normal state the organizer can choose to collapse.
//
// # Lifetime
//
// Sessions live in memory for as long as the server runs. Nothing is meant
// to survive a restart.
package models
