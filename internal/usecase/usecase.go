// Package usecase holds the contracts every business operation follows. A
// use case is built per request from the shared State and executed once.
package usecase

import (
	"context"
	"net/http"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/store"
)

// TokenIssuer signs bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string, roles []string) (string, error)
}

// State is built once at startup and shared read-only by every request.
type State struct {
	Store  store.Context
	Tokens TokenIssuer
}

// Response is a success payload plus the HTTP status it should be sent with.
type Response[T any] struct {
	Status int
	Data   T
}

func Ok[T any](data T) Response[T] {
	return Response[T]{Status: http.StatusOK, Data: data}
}

func Created[T any](data T) Response[T] {
	return Response[T]{Status: http.StatusCreated, Data: data}
}

func NoContent[T any]() Response[T] {
	return Response[T]{Status: http.StatusNoContent}
}

// PublicCase runs without a principal.
type PublicCase[I, O any] interface {
	Execute(ctx context.Context, in I) (Response[O], error)
}

// SecureCase runs on behalf of the authenticated principal.
type SecureCase[I, O any] interface {
	Execute(ctx context.Context, in I, user internal.UserInfo) (Response[O], error)
}

type PublicFactory[I, O any] func(state *State) PublicCase[I, O]

type SecureFactory[I, O any] func(state *State) SecureCase[I, O]

// Empty is the input of use cases that read nothing from the request.
type Empty struct{}
