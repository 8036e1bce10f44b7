// Package authz contains the ownership rule gating resource mutation.
package authz

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allowed means the caller may mutate the resource.
	Allowed Decision = iota
	// DeniedNotOwner means the caller is authenticated but does not own the resource.
	DeniedNotOwner
)

// AuthorizeOwner checks that the caller created the resource. It is the only
// authorization rule in the system: mutation requires ownership, reads do not.
func AuthorizeOwner(createdBy, caller bson.ObjectID) Decision {
	if createdBy != caller {
		return DeniedNotOwner
	}

	return Allowed
}
