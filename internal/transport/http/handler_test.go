package httptransport_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"walletcore/internal/access"
	"walletcore/internal/chain"
	"walletcore/internal/factory"
	"walletcore/internal/indexer"
	"walletcore/internal/platform/metrics"
	"walletcore/internal/platform/middleware"
	"walletcore/internal/service"
	"walletcore/internal/sso"
	httptransport "walletcore/internal/transport/http"
	"walletcore/internal/transport/http/mocks"
	"walletcore/internal/wallet"
	dErrors "walletcore/pkg/domain-errors"
)

var (
	admin      = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	owner      = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	walletAddr = common.HexToAddress("0x00000000000000000000000000000000000000cc")
	signer     = common.HexToAddress("0x00000000000000000000000000000000000000dd")
)

type stubValidator map[string]common.Address

func (v stubValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	caller, ok := v[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &middleware.JWTClaims{Caller: caller, JTI: "jti-" + token}, nil
}

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	h := httptransport.New(s.service, logger, m)
	s.router = httptransport.NewRouter(h, stubValidator{"admin": admin, "owner": owner}, nil, nil, logger, m)
}

func (s *HandlerSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func receipt(from, to common.Address, events ...chain.Event) *chain.Receipt {
	r := &chain.Receipt{
		TxHash:      common.BigToHash(big.NewInt(7)),
		From:        from,
		To:          to,
		BlockNumber: 3,
		BlockTime:   1_700_000_000,
		Status:      chain.StatusSuccess,
	}
	for i, ev := range events {
		r.Logs = append(r.Logs, chain.Log{Address: to, Index: uint(i), Event: ev, BlockNumber: 3, BlockTime: 1_700_000_000, TxHash: r.TxHash})
	}
	return r
}

func (s *HandlerSuite) TestHealthz() {
	w := s.do(http.MethodGet, "/healthz", "", "")
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get(middleware.RequestIDHeader))
}

func (s *HandlerSuite) TestCreateWallet() {
	s.Run("owner defaults to the caller", func() {
		s.service.EXPECT().
			CreateWallet(gomock.Any(), owner, owner, (*common.Hash)(nil)).
			Return(&service.Provisioned{
				Wallet:  walletAddr,
				Receipt: receipt(owner, admin, factory.WalletCreated{Wallet: walletAddr, Owner: owner}),
			}, nil)

		w := s.do(http.MethodPost, "/factory/wallets", "owner", `{}`)
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

		resp := s.decode(w)
		s.Equal(walletAddr.Hex(), resp["wallet"])
		rec := resp["receipt"].(map[string]any)
		s.Equal("success", rec["status"])
		logs := rec["logs"].([]any)
		s.Require().Len(logs, 1)
		s.Equal("WalletCreated", logs[0].(map[string]any)["event"])
	})

	s.Run("explicit owner and salt are forwarded", func() {
		salt := common.HexToHash("0x01")
		s.service.EXPECT().
			CreateWallet(gomock.Any(), admin, owner, &salt).
			Return(&service.Provisioned{Wallet: walletAddr, Receipt: receipt(admin, admin)}, nil)

		body := `{"owner":"` + owner.Hex() + `","salt":"` + salt.Hex() + `"}`
		w := s.do(http.MethodPost, "/factory/wallets", "admin", body)
		s.Equal(http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("missing token is rejected before the service", func() {
		w := s.do(http.MethodPost, "/factory/wallets", "", `{}`)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("unknown token is rejected", func() {
		w := s.do(http.MethodPost, "/factory/wallets", "mallory", `{}`)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("malformed owner is a validation error", func() {
		w := s.do(http.MethodPost, "/factory/wallets", "owner", `{"owner":"0x1234"}`)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("validation_error", s.decode(w)["error"])
	})

	s.Run("unknown fields are rejected", func() {
		w := s.do(http.MethodPost, "/factory/wallets", "owner", `{"owner_id":"x"}`)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("bad_request", s.decode(w)["error"])
	})

	s.Run("duplicate wallet maps to conflict with revert name", func() {
		s.service.EXPECT().
			CreateWallet(gomock.Any(), owner, owner, gomock.Nil()).
			Return(nil, &factory.WalletAlreadyExistsError{Owner: owner, Wallet: walletAddr})

		w := s.do(http.MethodPost, "/factory/wallets", "owner", `{}`)
		s.Equal(http.StatusConflict, w.Code)
		resp := s.decode(w)
		s.Equal("conflict", resp["error"])
		s.Equal("WalletAlreadyExists", resp["revert"])
	})
}

func (s *HandlerSuite) TestPredictWallet() {
	s.Run("derives the default salt from owner", func() {
		used := common.HexToHash("0xbeef")
		s.service.EXPECT().
			PredictWalletAddress(gomock.Any(), owner, gomock.Nil()).
			Return(walletAddr, used, nil)

		w := s.do(http.MethodGet, "/factory/predict?owner="+owner.Hex(), "", "")
		s.Require().Equal(http.StatusOK, w.Code)
		resp := s.decode(w)
		s.Equal(walletAddr.Hex(), resp["wallet"])
		s.Equal(used.Hex(), resp["salt"])
	})

	s.Run("owner is required without a salt", func() {
		w := s.do(http.MethodGet, "/factory/predict", "", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestDeployAndAssign() {
	s.Run("deploy validates count", func() {
		w := s.do(http.MethodPost, "/factory/pool", "admin", `{"count":0}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("deploy returns the pool", func() {
		s.service.EXPECT().
			DeployWallets(gomock.Any(), admin, 2).
			Return(&service.Pool{Wallets: []common.Address{walletAddr, signer}, Receipt: receipt(admin, admin)}, nil)

		w := s.do(http.MethodPost, "/factory/pool", "admin", `{"count":2}`)
		s.Require().Equal(http.StatusCreated, w.Code)
		s.Len(s.decode(w)["wallets"], 2)
	})

	s.Run("non owner assign is forbidden", func() {
		s.service.EXPECT().
			AssignWallet(gomock.Any(), owner, walletAddr, owner).
			Return(nil, &access.OwnableUnauthorizedAccountError{Account: owner})

		body := `{"wallet":"` + walletAddr.Hex() + `","owner":"` + owner.Hex() + `"}`
		w := s.do(http.MethodPost, "/factory/pool/assign", "owner", body)
		s.Equal(http.StatusForbidden, w.Code)
		s.Equal("OwnableUnauthorizedAccount", s.decode(w)["revert"])
	})

	s.Run("retire wallet", func() {
		s.service.EXPECT().
			RetireWallet(gomock.Any(), admin, walletAddr).
			Return(receipt(admin, admin), nil)

		w := s.do(http.MethodDelete, "/factory/wallets/"+walletAddr.Hex(), "admin", "")
		s.Require().Equal(http.StatusOK, w.Code)
		s.Equal(walletAddr.Hex(), s.decode(w)["wallet"])
	})

	s.Run("retire rejects a malformed address", func() {
		w := s.do(http.MethodDelete, "/factory/wallets/not-an-address", "admin", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestExecute() {
	s.Run("single call", func() {
		call := wallet.Call{To: signer, Value: uint256.NewInt(5), Data: []byte{0xab}}
		s.service.EXPECT().
			Execute(gomock.Any(), owner, walletAddr, call).
			Return(&service.Execution{Result: wallet.Result{Nonce: 4, ReturnData: []byte{0x01}}, Receipt: receipt(owner, walletAddr)}, nil)

		body := `{"to":"` + signer.Hex() + `","value":"5","data":"0xab"}`
		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/execute", "owner", body)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		results := s.decode(w)["results"].([]any)
		s.Require().Len(results, 1)
		s.InDelta(4, results[0].(map[string]any)["nonce"], 0)
		s.Equal("0x01", results[0].(map[string]any)["returnData"])
	})

	s.Run("hex value is accepted", func() {
		call := wallet.Call{To: signer, Value: uint256.NewInt(16)}
		s.service.EXPECT().
			Execute(gomock.Any(), owner, walletAddr, call).
			Return(&service.Execution{Receipt: receipt(owner, walletAddr)}, nil)

		body := `{"to":"` + signer.Hex() + `","value":"0x10"}`
		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/execute", "owner", body)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("insufficient balance is unprocessable", func() {
		s.service.EXPECT().
			Execute(gomock.Any(), owner, walletAddr, gomock.Any()).
			Return(nil, &wallet.InsufficientBalanceError{Required: uint256.NewInt(5), Available: uint256.NewInt(0)})

		body := `{"to":"` + signer.Hex() + `","value":"5"}`
		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/execute", "owner", body)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
		s.Equal("InsufficientBalance", s.decode(w)["revert"])
	})

	s.Run("bad wallet path", func() {
		w := s.do(http.MethodPost, "/wallets/nope/execute", "owner", `{}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("batch", func() {
		s.service.EXPECT().
			ExecuteBatch(gomock.Any(), owner, walletAddr, gomock.Len(2)).
			Return(&service.BatchExecution{
				Results: []wallet.Result{{Nonce: 1}, {Nonce: 2}},
				Receipt: receipt(owner, walletAddr),
			}, nil)

		call := `{"to":"` + signer.Hex() + `"}`
		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/execute-batch", "owner", `{"calls":[`+call+`,`+call+`]}`)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		s.Len(s.decode(w)["results"], 2)
	})

	s.Run("signed call is relayed by the caller", func() {
		s.service.EXPECT().
			ExecuteWithSignature(gomock.Any(), admin, walletAddr, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ common.Address, req service.SignedCall) (*service.Execution, error) {
				s.Equal(uint64(1_800_000_000), req.Deadline)
				s.Len(req.Signature, 65)
				s.Equal(signer, req.Call.To)
				return &service.Execution{Result: wallet.Result{Nonce: 9}, Receipt: receipt(admin, walletAddr)}, nil
			})

		sig := "0x" + strings.Repeat("11", 65)
		body := `{"to":"` + signer.Hex() + `","deadline":1800000000,"signature":"` + sig + `"}`
		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/execute-signed", "admin", body)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("signed call requires a deadline", func() {
		body := `{"to":"` + signer.Hex() + `","signature":"0x11"}`
		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/execute-signed", "admin", body)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("digest is public", func() {
		digest := common.HexToHash("0xd1")
		s.service.EXPECT().
			SigningDigest(gomock.Any(), walletAddr, gomock.Any(), uint64(1_800_000_000)).
			Return(digest, uint64(3), nil)

		body := `{"to":"` + signer.Hex() + `","deadline":1800000000}`
		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/digest", "", body)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		resp := s.decode(w)
		s.Equal(digest.Hex(), resp["digest"])
		s.InDelta(3, resp["nonce"], 0)
	})
}

func (s *HandlerSuite) TestWalletReads() {
	s.Run("info", func() {
		s.service.EXPECT().WalletInfo(gomock.Any(), walletAddr).Return(&service.WalletInfo{
			Address: walletAddr,
			Owner:   owner,
			State:   wallet.StateActive,
			Nonce:   2,
			Balance: uint256.NewInt(1000),
		}, nil)

		w := s.do(http.MethodGet, "/wallets/"+walletAddr.Hex(), "", "")
		s.Require().Equal(http.StatusOK, w.Code)
		resp := s.decode(w)
		s.Equal("active", resp["state"])
		s.Equal("1000", resp["balance"])
	})

	s.Run("unknown transaction", func() {
		s.service.EXPECT().Transaction(gomock.Any(), walletAddr, uint64(42)).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "transaction not found"))

		w := s.do(http.MethodGet, "/wallets/"+walletAddr.Hex()+"/transactions/42", "", "")
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("non numeric nonce", func() {
		w := s.do(http.MethodGet, "/wallets/"+walletAddr.Hex()+"/transactions/abc", "", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("internal errors hide their message", func() {
		s.service.EXPECT().WalletRecords(gomock.Any(), walletAddr, indexer.MaxLimit).
			Return(nil, dErrors.Wrap(errors.New("connection refused"), dErrors.CodeInternal, "list records"))

		w := s.do(http.MethodGet, "/wallets/"+walletAddr.Hex()+"/records?limit=100000", "", "")
		s.Equal(http.StatusInternalServerError, w.Code)
		s.NotContains(w.Body.String(), "connection refused")
	})

	s.Run("session keys", func() {
		s.service.EXPECT().SessionKeys(gomock.Any(), walletAddr).Return([]sso.SessionKey{{
			Wallet:      walletAddr,
			Signer:      signer,
			ValidUntil:  10,
			Permissions: sso.PermissionExecute | sso.PermissionExecuteBatch,
			Active:      true,
		}}, nil)

		w := s.do(http.MethodGet, "/wallets/"+walletAddr.Hex()+"/session-keys", "", "")
		s.Require().Equal(http.StatusOK, w.Code)
		var keys []map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &keys))
		s.Require().Len(keys, 1)
		s.Equal("execute|execute_batch", keys[0]["permissions"])
	})
}

func (s *HandlerSuite) TestSessionKeys() {
	s.Run("owner grant", func() {
		s.service.EXPECT().
			AddSessionKey(gomock.Any(), owner, walletAddr, service.SessionKeyGrant{
				Signer:      signer,
				ValidUntil:  500,
				Permissions: sso.PermissionExecute,
			}).
			Return(receipt(owner, walletAddr), nil)

		body := `{"signer":"` + signer.Hex() + `","validUntil":500,"permissions":["execute"]}`
		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/session-keys", "owner", body)
		s.Equal(http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("unknown permission", func() {
		body := `{"signer":"` + signer.Hex() + `","validUntil":500,"permissions":["root"]}`
		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/session-keys", "owner", body)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("revoke for a wallet by an unauthorized caller", func() {
		s.service.EXPECT().
			RevokeSessionKeyFor(gomock.Any(), owner, walletAddr, signer).
			Return(nil, sso.ErrUnauthorizedCaller)

		w := s.do(http.MethodDelete, "/sso/wallets/"+walletAddr.Hex()+"/session-keys/"+signer.Hex(), "owner", "")
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("validate parses the permission list", func() {
		s.service.EXPECT().
			ValidateSessionKey(gomock.Any(), walletAddr, signer, sso.PermissionExecute|sso.PermissionTransferNative).
			Return(true, nil)

		path := "/sso/wallets/" + walletAddr.Hex() + "/signers/" + signer.Hex() + "?permissions=execute,transfer_native"
		w := s.do(http.MethodGet, path, "", "")
		s.Require().Equal(http.StatusOK, w.Code)
		s.Equal(true, s.decode(w)["valid"])
	})

	s.Run("validate without permissions checks liveness", func() {
		s.service.EXPECT().
			ValidateSessionKey(gomock.Any(), walletAddr, signer, sso.Permission(0)).
			Return(false, nil)

		w := s.do(http.MethodGet, "/sso/wallets/"+walletAddr.Hex()+"/signers/"+signer.Hex(), "", "")
		s.Require().Equal(http.StatusOK, w.Code)
		s.Equal(false, s.decode(w)["valid"])
	})

	s.Run("authorized caller toggle", func() {
		s.service.EXPECT().
			SetAuthorizedCaller(gomock.Any(), admin, signer, true).
			Return(receipt(admin, admin), nil)

		w := s.do(http.MethodPut, "/sso/authorized-callers/"+signer.Hex(), "admin", `{"allowed":true}`)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})
}

func (s *HandlerSuite) TestDeposit() {
	s.Run("positive amount", func() {
		s.service.EXPECT().
			Deposit(gomock.Any(), owner, walletAddr, uint256.NewInt(250)).
			Return(receipt(owner, walletAddr), nil)

		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/deposit", "owner", `{"amount":"250"}`)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("zero amount", func() {
		w := s.do(http.MethodPost, "/wallets/"+walletAddr.Hex()+"/deposit", "owner", `{"amount":"0"}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestLedger() {
	s.Run("status", func() {
		s.service.EXPECT().LedgerStatus(gomock.Any()).Return(service.LedgerStatus{TotalTransactions: 12, Factory: admin}, nil)

		w := s.do(http.MethodGet, "/ledger", "", "")
		s.Require().Equal(http.StatusOK, w.Code)
		s.InDelta(12, s.decode(w)["totalTransactions"], 0)
	})

	s.Run("transactions paging", func() {
		s.service.EXPECT().Transactions(gomock.Any(), uint64(5), 10).Return([]indexer.Record{{
			Event:    "TransactionExecuted",
			Wallet:   walletAddr,
			Sequence: 6,
			Payload:  json.RawMessage(`{"nonce":0}`),
		}}, nil)

		w := s.do(http.MethodGet, "/ledger/transactions?after=5&limit=10", "", "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		records := s.decode(w)["records"].([]any)
		s.Require().Len(records, 1)
		s.InDelta(6, records[0].(map[string]any)["sequence"], 0)
	})

	s.Run("negative after", func() {
		w := s.do(http.MethodGet, "/ledger/transactions?after=-1", "", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unregistered owner", func() {
		s.service.EXPECT().RegisteredOwner(gomock.Any(), walletAddr).
			Return(common.Address{}, dErrors.New(dErrors.CodeNotFound, "wallet is not registered"))

		w := s.do(http.MethodGet, "/ledger/wallets/"+walletAddr.Hex()+"/owner", "", "")
		s.Equal(http.StatusNotFound, w.Code)
	})
}
