// Package chain is the deterministic execution substrate contracts run on.
//
// A Chain applies ledger transactions one at a time under a single lock, so
// every transaction observes a total order. Each transaction mines its own
// block. State mutations made by contracts are journaled through the Frame
// they run in; a failing transaction replays the journal backwards and leaves
// no trace other than its failed receipt.
package chain

import (
	"context"
	"encoding/binary"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"walletcore/internal/platform/metrics"
)

// DefaultChainID is used when no chain id is configured.
const DefaultChainID = 31337

type account struct {
	balance  *uint256.Int
	nonce    uint64
	contract any
}

// Chain holds accounts, contracts and the block cursor.
type Chain struct {
	mu       sync.Mutex
	chainID  *big.Int
	clock    func() time.Time
	height   uint64
	time     uint64
	txCount  uint64
	accounts map[common.Address]*account

	sinks   []Sink
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Chain.
type Option func(*Chain)

func WithChainID(id uint64) Option {
	return func(c *Chain) {
		c.chainID = new(big.Int).SetUint64(id)
	}
}

// WithClock overrides the wall clock used to stamp blocks.
func WithClock(clock func() time.Time) Option {
	return func(c *Chain) {
		c.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Chain) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Chain) {
		c.metrics = m
	}
}

// WithSink registers a receipt consumer. Sinks run in registration order.
func WithSink(sink Sink) Option {
	return func(c *Chain) {
		c.sinks = append(c.sinks, sink)
	}
}

func New(opts ...Option) *Chain {
	c := &Chain{
		chainID:  big.NewInt(DefaultChainID),
		clock:    time.Now,
		accounts: make(map[common.Address]*account),
		logger:   slog.Default(),
		tracer:   otel.Tracer("walletcore/chain"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddSink registers a receipt consumer after construction.
func (c *Chain) AddSink(sink Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, sink)
}

func (c *Chain) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Height returns the number of the latest block.
func (c *Chain) Height() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

// Apply runs fn as one ledger transaction sent by from to the contract at to.
// fn runs in a root frame whose caller is from and whose self is to. When fn
// fails every journaled mutation is reverted and the receipt is marked failed;
// the returned error is the revert error.
func (c *Chain) Apply(ctx context.Context, from, to common.Address, fn func(f *Frame) error) (*Receipt, error) {
	return c.apply(ctx, from, to, func(tx *txState) error {
		return fn(tx.root(from, to))
	})
}

// Send transfers value and data from the externally owned account from to to,
// as a plain ledger transaction.
func (c *Chain) Send(ctx context.Context, from, to common.Address, value *uint256.Int, data []byte) (*Receipt, error) {
	return c.apply(ctx, from, to, func(tx *txState) error {
		_, err := tx.root(common.Address{}, from).Call(to, value, data)
		return err
	})
}

// Deploy creates a contract from the externally owned account from. The
// address is derived from the sender and its account nonce.
func (c *Chain) Deploy(ctx context.Context, from common.Address, build func(f *Frame) (any, error)) (common.Address, *Receipt, error) {
	var addr common.Address
	receipt, err := c.apply(ctx, from, common.Address{}, func(tx *txState) error {
		var err error
		addr, err = tx.root(common.Address{}, from).Create(build)
		return err
	})
	if err != nil {
		return common.Address{}, receipt, err
	}
	return addr, receipt, nil
}

// Fund credits amount to addr out of thin air. It is the genesis and faucet
// primitive and is not reachable from contract code.
func (c *Chain) Fund(ctx context.Context, addr common.Address, amount *uint256.Int) (*Receipt, error) {
	return c.apply(ctx, common.Address{}, addr, func(tx *txState) error {
		f := tx.root(common.Address{}, addr)
		acct := f.ensureAccount(addr)
		Set(f, &acct.balance, new(uint256.Int).Add(acct.balance, amount))
		return nil
	})
}

// View runs fn against the current state as a simulated call from caller.
// Every mutation fn makes is discarded and no block is mined. The frame sees
// the timestamp the next block would carry.
func (c *Chain) View(ctx context.Context, caller, to common.Address, fn func(f *Frame) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := &txState{
		ctx:    ctx,
		chain:  c,
		origin: caller,
		number: c.height + 1,
		time:   c.nextTime(),
	}
	defer tx.revertTo(0)
	return runGuarded(func() error {
		return fn(tx.root(caller, to))
	})
}

// BalanceOf returns the native balance of addr.
func (c *Chain) BalanceOf(addr common.Address) *uint256.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if acct, ok := c.accounts[addr]; ok {
		return new(uint256.Int).Set(acct.balance)
	}
	return new(uint256.Int)
}

// ContractAt reports whether addr holds a contract.
func (c *Chain) ContractAt(addr common.Address) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	acct, ok := c.accounts[addr]
	return ok && acct.contract != nil
}

func (c *Chain) apply(ctx context.Context, from, to common.Address, fn func(tx *txState) error) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := c.tracer.Start(ctx, "chain.apply", trace.WithAttributes(
		attribute.String("from", from.Hex()),
		attribute.String("to", to.Hex()),
	))
	defer span.End()

	start := time.Now()
	c.mu.Lock()
	receipt := c.applyLocked(ctx, from, to, fn)
	sinks := c.sinks
	c.mu.Unlock()
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.String("tx_hash", receipt.TxHash.Hex()),
		attribute.Int64("block", int64(receipt.BlockNumber)),
	)
	revert := RevertName(receipt.Err)
	if receipt.Err != nil {
		span.SetStatus(codes.Error, revert)
		c.logger.InfoContext(ctx, "ledger transaction reverted",
			"tx_hash", receipt.TxHash.Hex(),
			"block", receipt.BlockNumber,
			"from", from.Hex(),
			"to", to.Hex(),
			"revert", revert,
			"error", receipt.Err,
		)
	} else {
		c.logger.DebugContext(ctx, "ledger transaction applied",
			"tx_hash", receipt.TxHash.Hex(),
			"block", receipt.BlockNumber,
			"from", from.Hex(),
			"to", to.Hex(),
			"logs", len(receipt.Logs),
		)
	}
	if c.metrics != nil {
		c.metrics.ObserveLedgerTransaction(receipt.Status.String(), revert, elapsed)
	}

	for _, sink := range sinks {
		sink.Deliver(ctx, receipt)
	}
	return receipt, receipt.Err
}

func (c *Chain) applyLocked(ctx context.Context, from, to common.Address, fn func(tx *txState) error) *Receipt {
	c.height++
	c.time = c.nextTime()
	c.txCount++

	tx := &txState{
		ctx:    ctx,
		chain:  c,
		origin: from,
		number: c.height,
		time:   c.time,
		hash:   c.txHash(from),
	}
	receipt := &Receipt{
		TxHash:      tx.hash,
		From:        from,
		To:          to,
		BlockNumber: tx.number,
		BlockTime:   tx.time,
	}

	if err := runGuarded(func() error { return fn(tx) }); err != nil {
		tx.revertTo(0)
		receipt.Status = StatusFailed
		receipt.Err = err
		return receipt
	}

	receipt.Status = StatusSuccess
	receipt.Logs = make([]Log, len(tx.logs))
	for i, l := range tx.logs {
		l.Index = uint(i)
		l.BlockNumber = tx.number
		l.BlockTime = tx.time
		l.TxHash = tx.hash
		receipt.Logs[i] = l
	}
	return receipt
}

// nextTime is the timestamp of the next block: wall clock, never earlier
// than the previous block.
func (c *Chain) nextTime() uint64 {
	now := c.clock().Unix()
	if now < 0 {
		now = 0
	}
	if uint64(now) < c.time {
		return c.time
	}
	return uint64(now)
}

func (c *Chain) txHash(from common.Address) common.Hash {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], c.txCount)
	binary.BigEndian.PutUint64(buf[8:], c.height)
	return crypto.Keccak256Hash(common.LeftPadBytes(c.chainID.Bytes(), 32), from.Bytes(), buf[:])
}

func runGuarded(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn()
}
