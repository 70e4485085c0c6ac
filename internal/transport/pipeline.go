package transport

import (
	"net/http"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/usecase"
)

// Public adapts a use case that needs no principal into a handler: bind the
// input, build the use case, execute it and write the result or the error.
func Public[I, O any](h *BaseHandler, state *usecase.State, bind Binder[I], factory usecase.PublicFactory[I, O]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := bind(r)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}

		resp, err := factory(state).Execute(r.Context(), in)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}

		h.WriteJSON(w, resp.Status, resp.Data)
	}
}

// Secure is Public for routes behind the auth middleware. The principal is
// read from the context before anything else; mounting a Secure handler
// without the middleware is a wiring bug and panics.
func Secure[I, O any](h *BaseHandler, state *usecase.State, bind Binder[I], factory usecase.SecureFactory[I, O]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := internal.UserFromContext(r.Context())
		if !ok {
			panic("transport: secure handler reached without an authenticated principal")
		}

		in, err := bind(r)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}

		resp, err := factory(state).Execute(r.Context(), in, user)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}

		h.WriteJSON(w, resp.Status, resp.Data)
	}
}
