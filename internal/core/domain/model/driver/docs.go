// Package driver models the read-side view of a courier account: the subset of
// a user record the dispatcher needs to pick an eligible assignee.
//
// Drivers are owned by the account system. This package never creates or
// mutates them; it only restores them from stored user records.
package driver
