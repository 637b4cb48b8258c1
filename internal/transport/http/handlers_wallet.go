package httptransport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "walletcore/pkg/domain-errors"
	"walletcore/pkg/platform/httputil"
	"walletcore/pkg/requestcontext"
)

// HandleExecute handles POST /wallets/{wallet}/execute.
func (h *Handler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CallRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	exec, err := h.service.Execute(ctx, caller, addr, req.call)
	if err != nil {
		h.fail(ctx, w, "execute", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromExecution(exec))
}

// HandleExecuteBatch handles POST /wallets/{wallet}/execute-batch.
func (h *Handler) HandleExecuteBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	batch, err := h.service.ExecuteBatch(ctx, caller, addr, req.calls)
	if err != nil {
		h.fail(ctx, w, "execute_batch", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromBatch(batch))
}

// HandleExecuteSigned handles POST /wallets/{wallet}/execute-signed. The
// authenticated caller only relays; the signature authorizes.
func (h *Handler) HandleExecuteSigned(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	relayer, ok := h.caller(w, r)
	if !ok {
		return
	}
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SignedExecuteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	exec, err := h.service.ExecuteWithSignature(ctx, relayer, addr, req.signed())
	if err != nil {
		h.fail(ctx, w, "execute_signed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromExecution(exec))
}

// HandleSigningDigest handles POST /wallets/{wallet}/digest.
func (h *Handler) HandleSigningDigest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DigestRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	digest, nonce, err := h.service.SigningDigest(ctx, addr, req.call, req.Deadline)
	if err != nil {
		h.fail(ctx, w, "signing_digest", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DigestResponse{Digest: digest, Nonce: nonce})
}

func (h *Handler) HandleSetMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[MetadataRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	receipt, err := h.service.SetMetadata(ctx, caller, addr, req.metadata())
	if err != nil {
		h.fail(ctx, w, "set_metadata", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReceiptOnlyResponse{Receipt: FromReceipt(receipt)})
}

func (h *Handler) HandleAddSessionKey(w http.ResponseWriter, r *http.Request) {
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
	receipt, err := h.service.AddSessionKey(ctx, caller, addr, req.grant)
	if err != nil {
		h.fail(ctx, w, "add_session_key", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ReceiptOnlyResponse{Receipt: FromReceipt(receipt)})
}

func (h *Handler) HandleRemoveSessionKey(w http.ResponseWriter, r *http.Request) {
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
	receipt, err := h.service.RemoveSessionKey(ctx, caller, addr, signer)
	if err != nil {
		h.fail(ctx, w, "remove_session_key", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReceiptOnlyResponse{Receipt: FromReceipt(receipt)})
}

func (h *Handler) HandleSetWalletPaused(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[PauseRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	receipt, err := h.service.SetWalletPaused(ctx, caller, addr, req.Paused)
	if err != nil {
		h.fail(ctx, w, "set_wallet_paused", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReceiptOnlyResponse{Receipt: FromReceipt(receipt)})
}

func (h *Handler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DepositRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	receipt, err := h.service.Deposit(ctx, caller, addr, req.amount)
	if err != nil {
		h.fail(ctx, w, "deposit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReceiptOnlyResponse{Receipt: FromReceipt(receipt)})
}

func (h *Handler) HandleWalletInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	info, err := h.service.WalletInfo(ctx, addr)
	if err != nil {
		h.fail(ctx, w, "wallet_info", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromWalletInfo(info))
}

func (h *Handler) HandleTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	nonce, err := strconv.ParseUint(chi.URLParam(r, "nonce"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "nonce must be a non-negative integer"))
		return
	}
	tx, err := h.service.Transaction(ctx, addr, nonce)
	if err != nil {
		h.fail(ctx, w, "transaction", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromTransaction(tx))
}

func (h *Handler) HandleTokenBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	token, ok := pathAddress(w, r, "token")
	if !ok {
		return
	}
	balance, err := h.service.TokenBalance(ctx, addr, token)
	if err != nil {
		h.fail(ctx, w, "token_balance", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Wallet: addr, Token: token, Balance: amount(balance)})
}

func (h *Handler) HandleSessionKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	keys, err := h.service.SessionKeys(ctx, addr)
	if err != nil {
		h.fail(ctx, w, "session_keys", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSessionKeys(keys))
}

func (h *Handler) HandleWalletRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	records, err := h.service.WalletRecords(ctx, addr, limit)
	if err != nil {
		h.fail(ctx, w, "wallet_records", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}
