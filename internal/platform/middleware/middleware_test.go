package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletcore/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return v.claims, v.err
}

type stubRevocations map[string]bool

func (s stubRevocations) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "broken" {
		return false, errors.New("redis down")
	}
	return s[jti], nil
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	caller := common.HexToAddress("0xca11e7")

	var seen common.Address
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.Caller(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	serve := func(v JWTValidator, revocations TokenRevocationChecker, header string) int {
		seen = common.Address{}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		RequireAuth(v, revocations, logger)(next).ServeHTTP(rr, req)
		return rr.Code
	}

	t.Run("valid token sets the caller", func(t *testing.T) {
		code := serve(stubValidator{claims: &JWTClaims{Caller: caller, JTI: "a"}}, nil, "Bearer tok")
		assert.Equal(t, http.StatusNoContent, code)
		assert.Equal(t, caller, seen)
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(stubValidator{}, nil, ""))
		assert.Equal(t, common.Address{}, seen)
	})

	t.Run("invalid token", func(t *testing.T) {
		code := serve(stubValidator{err: errors.New("bad")}, nil, "Bearer tok")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("revoked token", func(t *testing.T) {
		v := stubValidator{claims: &JWTClaims{Caller: caller, JTI: "gone"}}
		assert.Equal(t, http.StatusUnauthorized, serve(v, stubRevocations{"gone": true}, "Bearer tok"))
	})

	t.Run("revocation lookup failure", func(t *testing.T) {
		v := stubValidator{claims: &JWTClaims{Caller: caller, JTI: "broken"}}
		assert.Equal(t, http.StatusInternalServerError, serve(v, stubRevocations{}, "Bearer tok"))
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	t.Run("inbound id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", rr.Header().Get(RequestIDHeader))
	})

	t.Run("missing id is generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
	})
}
