package httptransport

import (
	"net/http"

	"walletcore/pkg/platform/httputil"
)

func (h *Handler) HandleLedgerStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := h.service.LedgerStatus(ctx)
	if err != nil {
		h.fail(ctx, w, "ledger_status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LedgerResponse{
		TotalTransactions: st.TotalTransactions,
		Factory:           st.Factory,
		Paused:            st.Paused,
	})
}

// HandleTransactions handles GET /ledger/transactions?after=&limit=.
func (h *Handler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	after, err := queryUint(r, "after")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	records, err := h.service.Transactions(ctx, after, limit)
	if err != nil {
		h.fail(ctx, w, "transactions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

func (h *Handler) HandleRegisteredOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	owner, err := h.service.RegisteredOwner(ctx, addr)
	if err != nil {
		h.fail(ctx, w, "registered_owner", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OwnerResponse{Wallet: addr, Owner: owner})
}
