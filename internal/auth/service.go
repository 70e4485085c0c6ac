package auth

import (
	"context"

	"github.com/frahmantamala/organization-management/internal/usecase"
	"github.com/frahmantamala/organization-management/pkg/logger"
)

// SignInCase issues a token for a configured placeholder identity. There is
// no credential check.
type SignInCase struct {
	state   *usecase.State
	subject string
	roles   []string
}

// NewSignInCase returns the factory the pipeline uses to build a SignInCase
// per request.
func NewSignInCase(subject string, roles []string) usecase.PublicFactory[usecase.Empty, string] {
	return func(state *usecase.State) usecase.PublicCase[usecase.Empty, string] {
		return &SignInCase{state: state, subject: subject, roles: roles}
	}
}

func (c *SignInCase) Execute(ctx context.Context, _ usecase.Empty) (usecase.Response[string], error) {
	token, err := c.state.Tokens.Issue(c.subject, c.roles)
	if err != nil {
		return usecase.Response[string]{}, err
	}
	logger.From(ctx).Debug("issued token", "subject", c.subject)
	return usecase.Ok(token), nil
}
