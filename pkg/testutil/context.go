package testutil

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"walletcore/pkg/requestcontext"
)

// WithCaller sets the authenticated caller on the request context, as the
// auth middleware would after validating a bearer token.
func WithCaller(req *http.Request, caller common.Address) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}

// WithBearer sets the Authorization header.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
