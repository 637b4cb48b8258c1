// Package httptransport exposes wallet, factory, session key and ledger
// operations over HTTP. Writes run as the caller named by the bearer token.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/holiman/uint256"

	"walletcore/internal/chain"
	"walletcore/internal/indexer"
	"walletcore/internal/platform/metrics"
	"walletcore/internal/service"
	"walletcore/internal/sso"
	"walletcore/internal/wallet"
	dErrors "walletcore/pkg/domain-errors"
	"walletcore/pkg/platform/httputil"
	"walletcore/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service is the operation surface the handlers delegate to.
type Service interface {
	ChainInfo() service.ChainInfo

	CreateWallet(ctx context.Context, caller, owner common.Address, salt *common.Hash) (*service.Provisioned, error)
	PredictWalletAddress(ctx context.Context, owner common.Address, salt *common.Hash) (common.Address, common.Hash, error)
	DeployWallets(ctx context.Context, caller common.Address, count int) (*service.Pool, error)
	AssignWallet(ctx context.Context, caller, wallet, owner common.Address) (*chain.Receipt, error)
	RetireWallet(ctx context.Context, caller, wallet common.Address) (*chain.Receipt, error)
	WalletOf(ctx context.Context, owner common.Address) (common.Address, error)
	UnassignedWallets(ctx context.Context) ([]common.Address, error)
	FactoryStatus(ctx context.Context) (service.FactoryStatus, error)
	SetFactoryPaused(ctx context.Context, caller common.Address, paused bool) (*chain.Receipt, error)

	Execute(ctx context.Context, caller, addr common.Address, call wallet.Call) (*service.Execution, error)
	ExecuteBatch(ctx context.Context, caller, addr common.Address, calls []wallet.Call) (*service.BatchExecution, error)
	ExecuteWithSignature(ctx context.Context, relayer, addr common.Address, req service.SignedCall) (*service.Execution, error)
	SigningDigest(ctx context.Context, addr common.Address, call wallet.Call, deadline uint64) (common.Hash, uint64, error)
	SetMetadata(ctx context.Context, caller, addr common.Address, md wallet.Metadata) (*chain.Receipt, error)
	AddSessionKey(ctx context.Context, caller, addr common.Address, grant service.SessionKeyGrant) (*chain.Receipt, error)
	RemoveSessionKey(ctx context.Context, caller, addr, signer common.Address) (*chain.Receipt, error)
	SetWalletPaused(ctx context.Context, caller, addr common.Address, paused bool) (*chain.Receipt, error)
	Deposit(ctx context.Context, caller, addr common.Address, amount *uint256.Int) (*chain.Receipt, error)
	WalletInfo(ctx context.Context, addr common.Address) (*service.WalletInfo, error)
	Transaction(ctx context.Context, addr common.Address, nonce uint64) (*wallet.Transaction, error)
	TokenBalance(ctx context.Context, addr, token common.Address) (*uint256.Int, error)

	RegisterSessionKeyFor(ctx context.Context, caller, wallet common.Address, grant service.SessionKeyGrant) (*chain.Receipt, error)
	RevokeSessionKeyFor(ctx context.Context, caller, wallet, signer common.Address) (*chain.Receipt, error)
	SetAuthorizedCaller(ctx context.Context, caller, target common.Address, allowed bool) (*chain.Receipt, error)
	IsAuthorizedCaller(ctx context.Context, target common.Address) (bool, error)
	SessionKeys(ctx context.Context, wallet common.Address) ([]sso.SessionKey, error)
	ValidateSessionKey(ctx context.Context, wallet, signer common.Address, required sso.Permission) (bool, error)

	LedgerStatus(ctx context.Context) (service.LedgerStatus, error)
	RegisteredOwner(ctx context.Context, wallet common.Address) (common.Address, error)
	WalletRecords(ctx context.Context, wallet common.Address, limit int) ([]indexer.Record, error)
	Transactions(ctx context.Context, afterSequence uint64, limit int) ([]indexer.Record, error)
}

// Handler wires HTTP endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a handler with its dependencies.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterPublic mounts read-only endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/chain", h.HandleChainInfo)

	r.Get("/factory", h.HandleFactoryStatus)
	r.Get("/factory/predict", h.HandlePredictWallet)
	r.Get("/factory/owners/{owner}/wallet", h.HandleWalletOf)
	r.Get("/factory/pool", h.HandleUnassignedWallets)

	r.Get("/wallets/{wallet}", h.HandleWalletInfo)
	r.Get("/wallets/{wallet}/transactions/{nonce}", h.HandleTransaction)
	r.Get("/wallets/{wallet}/tokens/{token}/balance", h.HandleTokenBalance)
	r.Get("/wallets/{wallet}/session-keys", h.HandleSessionKeys)
	r.Get("/wallets/{wallet}/records", h.HandleWalletRecords)
	r.Post("/wallets/{wallet}/digest", h.HandleSigningDigest)

	r.Get("/sso/wallets/{wallet}/signers/{signer}", h.HandleValidateSessionKey)
	r.Get("/sso/authorized-callers/{caller}", h.HandleIsAuthorizedCaller)

	r.Get("/ledger", h.HandleLedgerStatus)
	r.Get("/ledger/transactions", h.HandleTransactions)
	r.Get("/ledger/wallets/{wallet}/owner", h.HandleRegisteredOwner)
}

// RegisterAuthenticated mounts endpoints that submit ledger transactions.
// The router must run an authentication middleware that sets the caller.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/factory/wallets", h.HandleCreateWallet)
	r.Post("/factory/pool", h.HandleDeployWallets)
	r.Post("/factory/pool/assign", h.HandleAssignWallet)
	r.Delete("/factory/wallets/{wallet}", h.HandleRetireWallet)
	r.Put("/factory/paused", h.HandleSetFactoryPaused)

	r.Post("/wallets/{wallet}/execute", h.HandleExecute)
	r.Post("/wallets/{wallet}/execute-batch", h.HandleExecuteBatch)
	r.Post("/wallets/{wallet}/execute-signed", h.HandleExecuteSigned)
	r.Put("/wallets/{wallet}/metadata", h.HandleSetMetadata)
	r.Post("/wallets/{wallet}/session-keys", h.HandleAddSessionKey)
	r.Delete("/wallets/{wallet}/session-keys/{signer}", h.HandleRemoveSessionKey)
	r.Put("/wallets/{wallet}/paused", h.HandleSetWalletPaused)
	r.Post("/wallets/{wallet}/deposit", h.HandleDeposit)

	r.Post("/sso/wallets/{wallet}/session-keys", h.HandleRegisterSessionKeyFor)
	r.Delete("/sso/wallets/{wallet}/session-keys/{signer}", h.HandleRevokeSessionKeyFor)
	r.Put("/sso/authorized-callers/{caller}", h.HandleSetAuthorizedCaller)
}

// caller returns the authenticated caller or writes 401.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	caller := requestcontext.Caller(r.Context())
	if caller == (common.Address{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return common.Address{}, false
	}
	return caller, true
}

// pathAddress parses an address URL parameter or writes 400.
func pathAddress(w http.ResponseWriter, r *http.Request, name string) (common.Address, bool) {
	addr, err := parseAddress(name, chi.URLParam(r, name))
	if err != nil {
		httputil.WriteError(w, err)
		return common.Address{}, false
	}
	return addr, true
}

func queryUint(r *http.Request, name string) (uint64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeValidation, name+" must be a non-negative integer")
	}
	return v, nil
}

func queryLimit(r *http.Request) (int, error) {
	v, err := queryUint(r, "limit")
	if err != nil {
		return 0, err
	}
	if v > indexer.MaxLimit {
		v = indexer.MaxLimit
	}
	return int(v), nil
}

// fail logs a failed operation and writes the error response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, "request failed",
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"caller", requestcontext.Caller(ctx).Hex(),
		"revert", chain.RevertName(err),
		"error", err,
	)
	httputil.WriteError(w, err)
}
