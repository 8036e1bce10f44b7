package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestAuthorizeOwner(t *testing.T) {
	t.Parallel()

	owner := bson.NewObjectID()
	other := bson.NewObjectID()

	require.Equal(t, Allowed, AuthorizeOwner(owner, owner))
	require.Equal(t, DeniedNotOwner, AuthorizeOwner(owner, other))
}
