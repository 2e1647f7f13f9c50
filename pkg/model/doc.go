// Package model defines the gorm models for shiplog's postgres schema.
//
// # Models
//
//   - User: an account; the password column holds a bcrypt hash
//   - Product: owned by exactly one user
//   - Update: a change note on a product, with an UpdateStatus
//   - UpdatePoint: a line item of an update
//
// Ownership flows downward: an update point belongs to the owner of its
// update's product. IDs are random UUIDs assigned in Go before insert.
package model
