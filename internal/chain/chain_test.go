package chain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
)

type counted struct {
	Value uint64
}

func (counted) EventName() string { return "Counted" }

// counter is a minimal contract: calldata "fail" reverts after mutating.
type counter struct {
	value uint64
	seen  []common.Address
}

func (c *counter) Receive(f *Frame, data []byte) ([]byte, error) {
	Set(f, &c.value, c.value+1)
	Append(f, &c.seen, f.Caller())
	f.Emit(counted{Value: c.value})
	if string(data) == "fail" {
		return nil, errors.New("counter failure")
	}
	if string(data) == "panic" {
		panic("boom")
	}
	return []byte{byte(c.value)}, nil
}

type ChainSuite struct {
	suite.Suite
	chain    *Chain
	now      time.Time
	alice    common.Address
	bob      common.Address
	receipts []*Receipt
}

func TestChainSuite(t *testing.T) {
	suite.Run(t, new(ChainSuite))
}

func (s *ChainSuite) SetupTest() {
	s.now = time.Unix(1_700_000_000, 0)
	s.receipts = nil
	s.chain = New(
		WithClock(func() time.Time { return s.now }),
		WithSink(SinkFunc(func(_ context.Context, r *Receipt) {
			s.receipts = append(s.receipts, r)
		})),
	)
	s.alice = common.HexToAddress("0xa11ce")
	s.bob = common.HexToAddress("0xb0b")
}

func (s *ChainSuite) deployCounter() (common.Address, *counter) {
	c := &counter{}
	addr, _, err := s.chain.Deploy(context.Background(), s.alice, func(*Frame) (any, error) {
		return c, nil
	})
	s.Require().NoError(err)
	return addr, c
}

func (s *ChainSuite) TestApply() {
	ctx := context.Background()

	s.Run("committed transaction stamps logs", func() {
		addr, c := s.deployCounter()
		receipt, err := s.chain.Send(ctx, s.bob, addr, nil, nil)
		s.Require().NoError(err)
		s.True(receipt.Succeeded())
		s.Equal(uint64(1), c.value)
		s.Require().Len(receipt.Logs, 1)
		log := receipt.Logs[0]
		s.Equal(addr, log.Address)
		s.Equal(uint(0), log.Index)
		s.Equal(receipt.BlockNumber, log.BlockNumber)
		s.Equal(receipt.TxHash, log.TxHash)
		s.Equal(uint64(s.now.Unix()), log.BlockTime)
		s.Equal([]common.Address{s.bob}, c.seen)
	})

	s.Run("failed transaction reverts every change", func() {
		addr, c := s.deployCounter()
		_, err := s.chain.Send(ctx, s.bob, addr, nil, nil)
		s.Require().NoError(err)

		receipt, err := s.chain.Send(ctx, s.bob, addr, nil, []byte("fail"))
		s.Error(err)
		s.Equal(StatusFailed, receipt.Status)
		s.Empty(receipt.Logs)
		s.Equal(uint64(1), c.value)
		s.Len(c.seen, 1)
	})

	s.Run("panics become failed receipts", func() {
		addr, c := s.deployCounter()
		receipt, err := s.chain.Send(ctx, s.bob, addr, nil, []byte("panic"))
		var panicErr *PanicError
		s.ErrorAs(err, &panicErr)
		s.Equal("Panic", RevertName(err))
		s.False(receipt.Succeeded())
		s.Zero(c.value)
	})

	s.Run("each transaction mines one block with a distinct hash", func() {
		addr, _ := s.deployCounter()
		first, err := s.chain.Send(ctx, s.bob, addr, nil, nil)
		s.Require().NoError(err)
		second, err := s.chain.Send(ctx, s.bob, addr, nil, nil)
		s.Require().NoError(err)
		s.Equal(first.BlockNumber+1, second.BlockNumber)
		s.NotEqual(first.TxHash, second.TxHash)
	})

	s.Run("block time never goes backwards", func() {
		addr, _ := s.deployCounter()
		first, err := s.chain.Send(ctx, s.bob, addr, nil, nil)
		s.Require().NoError(err)
		s.now = s.now.Add(-time.Hour)
		second, err := s.chain.Send(ctx, s.bob, addr, nil, nil)
		s.Require().NoError(err)
		s.Equal(first.BlockTime, second.BlockTime)
	})

	s.Run("receipts reach sinks in order", func() {
		s.receipts = nil
		addr, _ := s.deployCounter()
		_, _ = s.chain.Send(ctx, s.bob, addr, nil, []byte("fail"))
		s.Require().Len(s.receipts, 2)
		s.True(s.receipts[0].Succeeded())
		s.False(s.receipts[1].Succeeded())
	})

	s.Run("cancelled context applies nothing", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		height := s.chain.Height()
		_, err := s.chain.Fund(cancelled, s.bob, uint256.NewInt(1))
		s.ErrorIs(err, context.Canceled)
		s.Equal(height, s.chain.Height())
	})
}

func (s *ChainSuite) TestValue() {
	ctx := context.Background()

	s.Run("send moves value", func() {
		_, err := s.chain.Fund(ctx, s.alice, uint256.NewInt(100))
		s.Require().NoError(err)
		_, err = s.chain.Send(ctx, s.alice, s.bob, uint256.NewInt(40), nil)
		s.Require().NoError(err)
		s.Equal(uint256.NewInt(60), s.chain.BalanceOf(s.alice))
		s.Equal(uint256.NewInt(40), s.chain.BalanceOf(s.bob))
	})

	s.Run("insufficient funds fail without effect", func() {
		_, err := s.chain.Send(ctx, s.bob, s.alice, uint256.NewInt(1000), nil)
		var funds *InsufficientFundsError
		s.Require().ErrorAs(err, &funds)
		s.Equal(s.bob, funds.Account)
		s.Equal(uint256.NewInt(40), s.chain.BalanceOf(s.bob))
	})

	s.Run("failing callee returns the value", func() {
		addr, _ := s.deployCounter()
		_, err := s.chain.Send(ctx, s.alice, addr, uint256.NewInt(10), []byte("fail"))
		s.Error(err)
		s.Equal(uint256.NewInt(60), s.chain.BalanceOf(s.alice))
		s.True(s.chain.BalanceOf(addr).IsZero())
	})
}

func (s *ChainSuite) TestNestedCalls() {
	ctx := context.Background()
	addr, c := s.deployCounter()
	caller := common.HexToAddress("0xca11")

	s.Run("nested failure reverts only the nested changes", func() {
		receipt, err := s.chain.Apply(ctx, s.bob, caller, func(f *Frame) error {
			if _, err := f.Call(addr, nil, nil); err != nil {
				return err
			}
			_, err := f.Call(addr, nil, []byte("fail"))
			s.Error(err)
			return nil
		})
		s.Require().NoError(err)
		s.Equal(uint64(1), c.value)
		s.Len(receipt.Logs, 1)
		s.Equal([]common.Address{caller}, c.seen)
	})

	s.Run("invoke sets caller to the invoking contract", func() {
		var seen common.Address
		_, err := s.chain.Apply(ctx, s.bob, caller, func(f *Frame) error {
			return f.Invoke(addr, func(child *Frame) error {
				seen = child.Caller()
				s.Equal(s.bob, child.Origin())
				return nil
			})
		})
		s.Require().NoError(err)
		s.Equal(caller, seen)
	})

	s.Run("calls to a non receiver contract fail", func() {
		plain, _, err := s.chain.Deploy(ctx, s.alice, func(*Frame) (any, error) {
			return struct{ name string }{name: "plain"}, nil
		})
		s.Require().NoError(err)
		_, err = s.chain.Send(ctx, s.bob, plain, nil, nil)
		var notPayable *NotPayableError
		s.ErrorAs(err, &notPayable)
	})
}

func (s *ChainSuite) TestDeploy() {
	ctx := context.Background()

	s.Run("create derives addresses from the sender nonce", func() {
		first, _ := s.deployCounter()
		second, _ := s.deployCounter()
		s.Equal(crypto.CreateAddress(s.alice, 0), first)
		s.Equal(crypto.CreateAddress(s.alice, 1), second)
	})

	s.Run("create2 is deterministic and single use", func() {
		factory := common.HexToAddress("0xfac")
		salt := [32]byte{1}
		codeHash := crypto.Keccak256([]byte("code"))
		build := func(*Frame) (any, error) { return &counter{}, nil }

		var addr common.Address
		_, err := s.chain.Apply(ctx, s.alice, factory, func(f *Frame) error {
			var err error
			addr, err = f.Create2(salt, codeHash, build)
			return err
		})
		s.Require().NoError(err)
		s.Equal(crypto.CreateAddress2(factory, salt, codeHash), addr)
		s.True(s.chain.ContractAt(addr))

		_, err = s.chain.Apply(ctx, s.alice, factory, func(f *Frame) error {
			_, err := f.Create2(salt, codeHash, build)
			return err
		})
		var inUse *AddressInUseError
		s.ErrorAs(err, &inUse)
	})

	s.Run("failed constructor leaves the address free", func() {
		_, _, err := s.chain.Deploy(ctx, s.bob, func(*Frame) (any, error) {
			return nil, errors.New("constructor failed")
		})
		s.Error(err)
		s.False(s.chain.ContractAt(crypto.CreateAddress(s.bob, 0)))
	})

	s.Run("resolve checks the contract type", func() {
		addr, c := s.deployCounter()
		err := s.chain.View(ctx, s.bob, addr, func(f *Frame) error {
			got, err := Resolve[*counter](f, addr)
			s.Require().NoError(err)
			s.Same(c, got)
			_, err = Resolve[Event](f, addr)
			return err
		})
		var noContract *NoContractError
		s.ErrorAs(err, &noContract)
	})
}

func (s *ChainSuite) TestView() {
	ctx := context.Background()
	addr, c := s.deployCounter()
	height := s.chain.Height()

	err := s.chain.View(ctx, s.bob, addr, func(f *Frame) error {
		_, err := f.Call(addr, nil, nil)
		s.Equal(height+1, f.BlockNumber())
		return err
	})
	s.Require().NoError(err)
	s.Zero(c.value)
	s.Empty(c.seen)
	s.Equal(height, s.chain.Height())
}

func (s *ChainSuite) TestSwap() {
	ctx := context.Background()
	holder := common.HexToAddress("0x1")
	items := []int{1, 2, 3, 4}

	_, err := s.chain.Apply(ctx, s.alice, holder, func(f *Frame) error {
		s.Equal(2, Swap(f, &items, 1))
		s.Equal([]int{1, 4, 3}, items)
		Append(f, &items, 9)
		return errors.New("abort")
	})
	s.Error(err)
	s.Equal([]int{1, 2, 3, 4}, items)
}

func (s *ChainSuite) TestEcrecover() {
	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	digest := crypto.Keccak256Hash([]byte("payload"))

	sig, err := crypto.Sign(digest[:], key)
	s.Require().NoError(err)

	signer, err := Ecrecover(digest, sig)
	s.Require().NoError(err)
	s.Equal(crypto.PubkeyToAddress(key.PublicKey), signer)

	_, err = Ecrecover(digest, sig[:64])
	s.ErrorIs(err, ErrInvalidSignature)
}
