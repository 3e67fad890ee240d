package graphql

import (
	"github.com/graphql-go/graphql"

	"event-booking/internal/data/entity"
	"event-booking/internal/dto/request"
)

func (s *Schema) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	return s.service.Auth.Login(p.Context, stringArg(p, "email"), stringArg(p, "password"))
}

func (s *Schema) resolveCreateUser(p graphql.ResolveParams) (interface{}, error) {
	in := objectArg(p, "userInput")
	input := &request.UserInput{
		Username: stringField(in, "username"),
		Email:    stringField(in, "email"),
		Password: stringField(in, "password"),
	}
	return s.service.Auth.CreateUser(p.Context, input)
}

func (s *Schema) resolveUpdateUser(p graphql.ResolveParams, caller *entity.User) (interface{}, error) {
	in := objectArg(p, "updateUserInput")
	input := &request.UpdateUserInput{
		Username: optStringField(in, "username"),
		Password: optStringField(in, "password"),
	}
	return s.service.Auth.UpdateUser(p.Context, caller, input)
}

func (s *Schema) resolveDeleteUser(p graphql.ResolveParams, caller *entity.User) (interface{}, error) {
	return s.service.Auth.DeleteUser(p.Context, caller)
}
