package httptransport

import (
	"net/http"
	"strings"

	"walletcore/internal/sso"
	"walletcore/pkg/platform/httputil"
	"walletcore/pkg/requestcontext"
)

// HandleRegisterSessionKeyFor handles POST /sso/wallets/{wallet}/session-keys.
func (h *Handler) HandleRegisterSessionKeyFor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SessionKeyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	receipt, err := h.service.RegisterSessionKeyFor(ctx, caller, addr, req.grant)
	if err != nil {
		h.fail(ctx, w, "register_session_key_for", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ReceiptOnlyResponse{Receipt: FromReceipt(receipt)})
}

func (h *Handler) HandleRevokeSessionKeyFor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	signer, ok := pathAddress(w, r, "signer")
	if !ok {
		return
	}
	receipt, err := h.service.RevokeSessionKeyFor(ctx, caller, addr, signer)
	if err != nil {
		h.fail(ctx, w, "revoke_session_key_for", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReceiptOnlyResponse{Receipt: FromReceipt(receipt)})
}

func (h *Handler) HandleSetAuthorizedCaller(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	target, ok := pathAddress(w, r, "caller")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AuthorizedCallerRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	receipt, err := h.service.SetAuthorizedCaller(ctx, caller, target, req.Allowed)
	if err != nil {
		h.fail(ctx, w, "set_authorized_caller", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReceiptOnlyResponse{Receipt: FromReceipt(receipt)})
}

func (h *Handler) HandleIsAuthorizedCaller(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	target, ok := pathAddress(w, r, "caller")
	if !ok {
		return
	}
	allowed, err := h.service.IsAuthorizedCaller(ctx, target)
	if err != nil {
		h.fail(ctx, w, "is_authorized_caller", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AuthorizedCallerResponse{Caller: target, Allowed: allowed})
}

// HandleValidateSessionKey handles
// GET /sso/wallets/{wallet}/signers/{signer}?permissions=execute,execute_batch.
func (h *Handler) HandleValidateSessionKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	signer, ok := pathAddress(w, r, "signer")
	if !ok {
		return
	}
	var required sso.Permission
	if raw := strings.TrimSpace(r.URL.Query().Get("permissions")); raw != "" {
		var err error
		if required, err = parsePermissions(strings.Split(raw, ",")); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	valid, err := h.service.ValidateSessionKey(ctx, addr, signer, required)
	if err != nil {
		h.fail(ctx, w, "validate_session_key", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ValidationResponse{Valid: valid})
}
