package graphql

import (
	"github.com/graphql-go/graphql"

	"event-booking/internal/apperr"
	"event-booking/internal/data/entity"
	"event-booking/pkg/utils"
)

const msgAuthRequired = "Authentication required!"

// authenticatedResolver is a resolver that additionally receives the
// logged-in caller.
type authenticatedResolver func(p graphql.ResolveParams, caller *entity.User) (interface{}, error)

// authenticated composes the login guard with a resolver. The HTTP
// middleware resolves the token into a user on the request context; here
// we only decide whether the field requires one.
func authenticated(next authenticatedResolver) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		caller, ok := utils.GetUserFromContext(p.Context)
		if !ok {
			return nil, apperr.Unauthenticated(msgAuthRequired)
		}
		return next(p, caller)
	}
}
