// Package entities contains core domain data structures.
package entities

import "time"

// Target is the subject claims are made about. Its identity is immutable;
// everything else about it lives in the facts proposed against it.
type Target struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
