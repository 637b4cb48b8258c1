package access

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"walletcore/internal/chain"
	dErrors "walletcore/pkg/domain-errors"
)

type AccessSuite struct {
	suite.Suite
	chain    *chain.Chain
	owner    common.Address
	stranger common.Address
	self     common.Address
}

func TestAccessSuite(t *testing.T) {
	suite.Run(t, new(AccessSuite))
}

func (s *AccessSuite) SetupTest() {
	s.chain = chain.New()
	s.owner = common.HexToAddress("0x01")
	s.stranger = common.HexToAddress("0x02")
	s.self = common.HexToAddress("0xc0")
}

func (s *AccessSuite) apply(from common.Address, fn func(f *chain.Frame) error) (*chain.Receipt, error) {
	return s.chain.Apply(context.Background(), from, s.self, fn)
}

func (s *AccessSuite) TestOwnable() {
	var o Ownable

	s.Run("zero initial owner is rejected", func() {
		_, err := s.apply(s.owner, func(f *chain.Frame) error {
			_, err := NewOwnable(f, common.Address{})
			return err
		})
		var invalid *OwnableInvalidOwnerError
		s.ErrorAs(err, &invalid)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("constructor emits transfer from zero", func() {
		receipt, err := s.apply(s.owner, func(f *chain.Frame) error {
			var err error
			o, err = NewOwnable(f, s.owner)
			return err
		})
		s.Require().NoError(err)
		s.Equal(s.owner, o.Owner())
		s.Require().Len(receipt.Logs, 1)
		s.Equal(OwnershipTransferred{NewOwner: s.owner}, receipt.Logs[0].Event)
	})

	s.Run("stranger cannot transfer", func() {
		_, err := s.apply(s.stranger, func(f *chain.Frame) error {
			return o.TransferOwnership(f, s.stranger)
		})
		var unauthorized *OwnableUnauthorizedAccountError
		s.Require().ErrorAs(err, &unauthorized)
		s.Equal(s.stranger, unauthorized.Account)
		s.Equal("OwnableUnauthorizedAccount", chain.RevertName(err))
	})

	s.Run("transfer to zero is rejected", func() {
		_, err := s.apply(s.owner, func(f *chain.Frame) error {
			return o.TransferOwnership(f, common.Address{})
		})
		var invalid *OwnableInvalidOwnerError
		s.ErrorAs(err, &invalid)
		s.Equal(s.owner, o.Owner())
	})

	s.Run("owner transfers", func() {
		receipt, err := s.apply(s.owner, func(f *chain.Frame) error {
			return o.TransferOwnership(f, s.stranger)
		})
		s.Require().NoError(err)
		s.Equal(s.stranger, o.Owner())
		s.Equal(OwnershipTransferred{PreviousOwner: s.owner, NewOwner: s.stranger}, receipt.Logs[0].Event)
	})

	s.Run("renounce is irreversible", func() {
		_, err := s.apply(s.stranger, o.RenounceOwnership)
		s.Require().NoError(err)
		s.Equal(common.Address{}, o.Owner())

		_, err = s.apply(s.stranger, func(f *chain.Frame) error {
			return o.TransferOwnership(f, s.stranger)
		})
		s.Error(err)
	})

	s.Run("bind allows the unassigned state", func() {
		var pooled Ownable
		receipt, err := s.apply(s.owner, func(f *chain.Frame) error {
			pooled.Bind(f, common.Address{})
			return nil
		})
		s.Require().NoError(err)
		s.Empty(receipt.Logs)

		_, err = s.apply(common.Address{}, pooled.CheckOwner)
		s.Error(err)
	})
}

func (s *AccessSuite) TestPausable() {
	var p Pausable

	s.Run("unpause when not paused fails", func() {
		_, err := s.apply(s.owner, p.Unpause)
		s.ErrorIs(err, ErrExpectedPause)
		s.Equal("ExpectedPause", chain.RevertName(err))
	})

	s.Run("pause emits and gates", func() {
		receipt, err := s.apply(s.owner, p.Pause)
		s.Require().NoError(err)
		s.True(p.Paused())
		s.Equal(Paused{Account: s.owner}, receipt.Logs[0].Event)
		s.ErrorIs(p.WhenNotPaused(), ErrEnforcedPause)
		s.NoError(p.WhenPaused())
	})

	s.Run("pause twice fails", func() {
		_, err := s.apply(s.owner, p.Pause)
		s.ErrorIs(err, ErrEnforcedPause)
	})

	s.Run("reverted unpause keeps the pause", func() {
		_, err := s.apply(s.owner, func(f *chain.Frame) error {
			if err := p.Unpause(f); err != nil {
				return err
			}
			return errors.New("abort")
		})
		s.Error(err)
		s.True(p.Paused())
	})

	s.Run("five interleaved cycles end unpaused", func() {
		_, err := s.apply(s.owner, p.Unpause)
		s.Require().NoError(err)
		for i := 0; i < 5; i++ {
			_, err = s.apply(s.owner, p.Pause)
			s.Require().NoError(err)
			_, err = s.apply(s.owner, p.Unpause)
			s.Require().NoError(err)
		}
		s.False(p.Paused())
	})
}

func (s *AccessSuite) TestReentrancyGuard() {
	var g ReentrancyGuard

	guarded := func(f *chain.Frame, inner func(f *chain.Frame) error) error {
		release, err := g.Enter(f)
		if err != nil {
			return err
		}
		defer release()
		return inner(f)
	}

	s.Run("nested entry fails", func() {
		var nested error
		_, err := s.apply(s.owner, func(f *chain.Frame) error {
			return guarded(f, func(f *chain.Frame) error {
				nested = guarded(f, func(*chain.Frame) error { return nil })
				return nil
			})
		})
		s.Require().NoError(err)
		s.ErrorIs(nested, ErrReentrantCall)
		s.False(g.Entered())
	})

	s.Run("sequential calls succeed", func() {
		for i := 0; i < 3; i++ {
			_, err := s.apply(s.owner, func(f *chain.Frame) error {
				return guarded(f, func(*chain.Frame) error { return nil })
			})
			s.Require().NoError(err)
		}
	})

	s.Run("failing guarded call releases the guard", func() {
		_, err := s.apply(s.owner, func(f *chain.Frame) error {
			return guarded(f, func(*chain.Frame) error { return errors.New("inner failed") })
		})
		s.Error(err)
		s.False(g.Entered())
	})
}
