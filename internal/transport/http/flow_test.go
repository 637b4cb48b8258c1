package httptransport_test

import (
	"context"
	"crypto/ecdsa"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-chi/chi/v5"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"walletcore/internal/chain"
	"walletcore/internal/deploy"
	"walletcore/internal/indexer"
	"walletcore/internal/indexer/store/memory"
	jwttoken "walletcore/internal/jwt_token"
	"walletcore/internal/platform/metrics"
	"walletcore/internal/service"
	httptransport "walletcore/internal/transport/http"
	"walletcore/internal/wallet"
	"walletcore/pkg/testutil"
)

// FlowSuite drives the router against a real ledger, indexer and token
// service.
type FlowSuite struct {
	suite.Suite
	ctx    context.Context
	now    time.Time
	chain  *chain.Chain
	inbox  *indexer.Inbox
	worker *indexer.Worker
	router chi.Router
	tokens *jwttoken.JWTService

	admin   common.Address
	userKey *ecdsa.PrivateKey
	user    common.Address
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowSuite))
}

func (s *FlowSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Unix(1_700_000_000, 0)
	s.inbox = indexer.NewInbox(256)
	s.chain = chain.New(
		chain.WithClock(func() time.Time { return s.now }),
		chain.WithSink(s.inbox),
	)
	s.admin = common.HexToAddress("0xad")

	var err error
	s.userKey, err = crypto.GenerateKey()
	s.Require().NoError(err)
	s.user = crypto.PubkeyToAddress(s.userKey.PublicKey)

	contracts, err := deploy.Genesis(s.ctx, s.chain, s.admin)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	store := memory.New()
	s.worker = indexer.NewWorker(store, s.inbox.C(), indexer.WithLogger(logger))
	svc := service.New(s.chain, contracts,
		service.WithLogger(logger),
		service.WithMetrics(m),
		service.WithRecords(store),
	)
	s.tokens = jwttoken.NewJWTService("test-key", "walletcore", "walletcore-api")
	h := httptransport.New(svc, logger, m)
	s.router = httptransport.NewRouter(h, jwttoken.NewJWTServiceAdapter(s.tokens), nil, nil, logger, m)
}

func (s *FlowSuite) token(caller common.Address) string {
	tok, err := s.tokens.GenerateAccessToken(caller, time.Hour)
	s.Require().NoError(err)
	return tok
}

func (s *FlowSuite) send(method, path string, caller common.Address, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	if caller != (common.Address{}) {
		req = testutil.WithBearer(req, s.token(caller))
	}
	return testutil.DoRequest(s.router, req)
}

func (s *FlowSuite) drain() {
	for {
		select {
		case r := <-s.inbox.C():
			s.Require().NoError(s.worker.Handle(s.ctx, r))
		default:
			return
		}
	}
}

func (s *FlowSuite) TestWalletLifecycle() {
	t := s.T()
	recipient := common.HexToAddress("0x4ec1")
	sessionKey, err := crypto.GenerateKey()
	s.Require().NoError(err)
	signer := crypto.PubkeyToAddress(sessionKey.PublicKey)

	_, err = s.chain.Fund(s.ctx, s.user, uint256.NewInt(10_000))
	s.Require().NoError(err)

	rr := s.send(http.MethodPost, "/factory/wallets", s.user, map[string]string{})
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[httptransport.WalletResponse](t, rr)
	addr := created.Wallet
	base := "/wallets/" + addr.Hex()

	rr = s.send(http.MethodPost, "/factory/wallets", s.user, map[string]string{})
	dup := testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	s.Equal("WalletAlreadyExists", dup.Revert)

	rr = s.send(http.MethodPost, base+"/deposit", s.user, map[string]string{"amount": "1000"})
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = s.send(http.MethodPost, base+"/execute", s.user, map[string]string{
		"to":    recipient.Hex(),
		"value": "100",
	})
	testutil.AssertStatus(t, rr, http.StatusOK)
	exec := testutil.UnmarshalResponse[httptransport.ExecutionResponse](t, rr)
	s.Require().Len(exec.Results, 1)
	s.Equal(uint64(0), exec.Results[0].Nonce)

	rr = s.send(http.MethodPost, base+"/execute", s.admin, map[string]string{"to": recipient.Hex()})
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")

	rr = s.send(http.MethodPost, base+"/session-keys", s.user, map[string]any{
		"signer":      signer.Hex(),
		"validAfter":  s.now.Unix(),
		"validUntil":  s.now.Add(time.Hour).Unix(),
		"permissions": []string{"execute"},
	})
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = s.send(http.MethodGet, "/sso/wallets/"+addr.Hex()+"/signers/"+signer.Hex()+"?permissions=execute", common.Address{}, nil)
	testutil.AssertJSONContains(t, rr, "valid", true)

	deadline := uint64(s.now.Add(10 * time.Minute).Unix())
	rr = s.send(http.MethodPost, base+"/digest", common.Address{}, map[string]any{
		"to":       recipient.Hex(),
		"value":    "50",
		"deadline": deadline,
	})
	testutil.AssertStatus(t, rr, http.StatusOK)
	digest := testutil.UnmarshalResponse[httptransport.DigestResponse](t, rr)
	s.Equal(uint64(1), digest.Nonce)

	sig, err := wallet.Sign(sessionKey, s.chain.ChainID(), addr, wallet.ExecuteRequest{
		To: recipient, Value: uint256.NewInt(50), Nonce: digest.Nonce, Deadline: deadline,
	})
	s.Require().NoError(err)

	signed := map[string]any{
		"to":        recipient.Hex(),
		"value":     "50",
		"deadline":  deadline,
		"signature": hexutil.Encode(sig),
	}
	rr = s.send(http.MethodPost, base+"/execute-signed", s.admin, signed)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = s.send(http.MethodPost, base+"/execute-signed", s.admin, signed)
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")

	rr = s.send(http.MethodGet, base, common.Address{}, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	info := testutil.UnmarshalResponse[httptransport.WalletInfoResponse](t, rr)
	s.Equal(s.user, info.Owner)
	s.Equal(uint64(2), info.Nonce)
	s.Equal("850", info.Balance)

	s.drain()
	rr = s.send(http.MethodGet, "/ledger/transactions", common.Address{}, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	records := testutil.UnmarshalResponse[httptransport.RecordsResponse](t, rr)
	s.Require().Len(records.Records, 2)
	s.Equal(uint64(1), records.Records[0].Sequence)
	s.Equal(uint64(2), records.Records[1].Sequence)
}

func (s *FlowSuite) TestPausedFactoryRejectsProvisioning() {
	t := s.T()
	rr := s.send(http.MethodPut, "/factory/paused", s.user, map[string]bool{"paused": true})
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")

	rr = s.send(http.MethodPut, "/factory/paused", s.admin, map[string]bool{"paused": true})
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = s.send(http.MethodPost, "/factory/wallets", s.user, map[string]string{})
	dup := testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	s.Equal("WalletAlreadyExists", dup.Revert)

	rr = s.send(http.MethodGet, "/factory", common.Address{}, nil)
	testutil.AssertJSONContains(t, rr, "paused", true)
}
