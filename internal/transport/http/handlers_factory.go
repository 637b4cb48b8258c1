package httptransport

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"walletcore/pkg/platform/httputil"
	"walletcore/pkg/requestcontext"
)

func (h *Handler) HandleChainInfo(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromChainInfo(h.service.ChainInfo()))
}

// HandleCreateWallet handles POST /factory/wallets.
func (h *Handler) HandleCreateWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateWalletRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	owner := caller
	if req.owner != nil {
		owner = *req.owner
	}

	p, err := h.service.CreateWallet(ctx, caller, owner, req.salt)
	if err != nil {
		h.fail(ctx, w, "create_wallet", err)
		return
	}
	h.logger.InfoContext(ctx, "wallet created",
		"request_id", requestcontext.RequestID(ctx),
		"wallet", p.Wallet.Hex(),
		"owner", owner.Hex(),
	)
	httputil.WriteJSON(w, http.StatusCreated, WalletResponse{Wallet: p.Wallet, Receipt: FromReceipt(p.Receipt)})
}

// HandlePredictWallet handles GET /factory/predict?owner=&salt=.
func (h *Handler) HandlePredictWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	salt, err := parseSalt(q.Get("salt"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var owner common.Address
	if raw := strings.TrimSpace(q.Get("owner")); raw != "" || salt == nil {
		if owner, err = parseAddress("owner", raw); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	addr, used, err := h.service.PredictWalletAddress(ctx, owner, salt)
	if err != nil {
		h.fail(ctx, w, "predict_wallet", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PredictResponse{Wallet: addr, Salt: used})
}

func (h *Handler) HandleWalletOf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := pathAddress(w, r, "owner")
	if !ok {
		return
	}
	addr, err := h.service.WalletOf(ctx, owner)
	if err != nil {
		h.fail(ctx, w, "wallet_of", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WalletResponse{Wallet: addr})
}

func (h *Handler) HandleUnassignedWallets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wallets, err := h.service.UnassignedWallets(ctx)
	if err != nil {
		h.fail(ctx, w, "unassigned_wallets", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PoolResponse{Wallets: wallets})
}

func (h *Handler) HandleFactoryStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := h.service.FactoryStatus(ctx)
	if err != nil {
		h.fail(ctx, w, "factory_status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromFactoryStatus(st))
}

// HandleDeployWallets handles POST /factory/pool.
func (h *Handler) HandleDeployWallets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DeployWalletsRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	pool, err := h.service.DeployWallets(ctx, caller, req.Count)
	if err != nil {
		h.fail(ctx, w, "deploy_wallets", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, PoolResponse{Wallets: pool.Wallets, Receipt: FromReceipt(pool.Receipt)})
}

// HandleAssignWallet handles POST /factory/pool/assign.
func (h *Handler) HandleAssignWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AssignWalletRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	receipt, err := h.service.AssignWallet(ctx, caller, req.wallet, req.owner)
	if err != nil {
		h.fail(ctx, w, "assign_wallet", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WalletResponse{Wallet: req.wallet, Receipt: FromReceipt(receipt)})
}

// HandleRetireWallet handles DELETE /factory/wallets/{wallet}.
func (h *Handler) HandleRetireWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	wallet, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	receipt, err := h.service.RetireWallet(ctx, caller, wallet)
	if err != nil {
		h.fail(ctx, w, "retire_wallet", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WalletResponse{Wallet: wallet, Receipt: FromReceipt(receipt)})
}

func (h *Handler) HandleSetFactoryPaused(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[PauseRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	receipt, err := h.service.SetFactoryPaused(ctx, caller, req.Paused)
	if err != nil {
		h.fail(ctx, w, "set_factory_paused", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReceiptOnlyResponse{Receipt: FromReceipt(receipt)})
}
