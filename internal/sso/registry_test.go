package sso

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"walletcore/internal/access"
	"walletcore/internal/chain"
	dErrors "walletcore/pkg/domain-errors"
)

type RegistrySuite struct {
	suite.Suite
	chain    *chain.Chain
	registry *Registry
	addr     common.Address
	admin    common.Address
	backend  common.Address
	wallet   common.Address
	signer   common.Address
	now      time.Time
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.now = time.Unix(1_700_000_000, 0)
	s.chain = chain.New(chain.WithClock(func() time.Time { return s.now }))
	s.admin = common.HexToAddress("0xad")
	s.backend = common.HexToAddress("0xbac")
	s.wallet = common.HexToAddress("0x3a11e7")
	s.signer = common.HexToAddress("0x5167")

	addr, _, err := s.chain.Deploy(context.Background(), s.admin, func(f *chain.Frame) (any, error) {
		var err error
		s.registry, err = New(f)
		return s.registry, err
	})
	s.Require().NoError(err)
	s.addr = addr
}

func (s *RegistrySuite) call(from common.Address, fn func(f *chain.Frame) error) (*chain.Receipt, error) {
	return s.chain.Apply(context.Background(), from, s.addr, fn)
}

func (s *RegistrySuite) unix() uint64 {
	return uint64(s.now.Unix())
}

func (s *RegistrySuite) register(signer common.Address, perms Permission) error {
	_, err := s.call(s.wallet, func(f *chain.Frame) error {
		return s.registry.RegisterSessionKey(f, signer, s.unix(), s.unix()+3600, perms)
	})
	return err
}

func (s *RegistrySuite) validate(signer common.Address, required Permission) bool {
	var valid bool
	err := s.chain.View(context.Background(), s.wallet, s.addr, func(f *chain.Frame) error {
		valid = s.registry.ValidateSessionKey(f, s.wallet, signer, required)
		return nil
	})
	s.Require().NoError(err)
	return valid
}

func (s *RegistrySuite) TestPermissions() {
	s.True((PermissionExecute | PermissionExecuteBatch).Satisfies(PermissionExecute))
	s.False(PermissionExecute.Satisfies(PermissionExecute | PermissionTransferNative))
	s.True(PermissionAll.Satisfies(PermissionTransferERC20 | PermissionExecute))
	s.True(Permission(0).Satisfies(0))
	s.Equal("execute|transfer_native", (PermissionExecute | PermissionTransferNative).String())

	parsed, ok := ParsePermissions([]string{"execute", "all"})
	s.True(ok)
	s.Equal(PermissionExecute|PermissionAll, parsed)
	_, ok = ParsePermissions([]string{"root"})
	s.False(ok)
}

func (s *RegistrySuite) TestRegister() {
	s.Run("window must be non-empty", func() {
		_, err := s.call(s.wallet, func(f *chain.Frame) error {
			return s.registry.RegisterSessionKey(f, s.signer, s.unix(), s.unix(), PermissionExecute)
		})
		s.ErrorIs(err, ErrInvalidValidityWindow)
	})

	s.Run("window must not exceed the maximum duration", func() {
		_, err := s.call(s.wallet, func(f *chain.Frame) error {
			limit := uint64(MaxSessionDuration.Seconds())
			return s.registry.RegisterSessionKey(f, s.signer, s.unix(), s.unix()+limit+1, PermissionExecute)
		})
		s.ErrorIs(err, ErrSessionDurationTooLong)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("zero signer is rejected", func() {
		s.ErrorIs(s.register(common.Address{}, PermissionExecute), ErrInvalidSigner)
	})

	s.Run("success stores an active key and emits", func() {
		receipt, err := s.call(s.wallet, func(f *chain.Frame) error {
			return s.registry.RegisterSessionKey(f, s.signer, s.unix(), s.unix()+3600, PermissionExecute)
		})
		s.Require().NoError(err)
		s.Equal(SessionKeyRegistered{
			Wallet:      s.wallet,
			Signer:      s.signer,
			ValidAfter:  s.unix(),
			ValidUntil:  s.unix() + 3600,
			Permissions: PermissionExecute,
		}, receipt.Logs[0].Event)

		key, ok := s.registry.GetSessionKey(s.wallet, s.signer)
		s.True(ok)
		s.True(key.Active)
		s.Equal(1, s.registry.ActiveKeyCount(s.wallet))
	})

	s.Run("duplicate active key is rejected", func() {
		err := s.register(s.signer, PermissionExecute)
		var exists *SessionKeyAlreadyExistsError
		s.Require().ErrorAs(err, &exists)
		s.Equal(s.signer, exists.Signer)
	})

	s.Run("re-registration after revocation succeeds", func() {
		_, err := s.call(s.wallet, func(f *chain.Frame) error {
			return s.registry.RevokeSessionKey(f, s.signer)
		})
		s.Require().NoError(err)
		s.NoError(s.register(s.signer, PermissionExecuteBatch))

		key, _ := s.registry.GetSessionKey(s.wallet, s.signer)
		s.Equal(PermissionExecuteBatch, key.Permissions)
		s.Equal([]common.Address{s.signer}, s.registry.GetActiveSigners(s.wallet))
	})
}

func signerN(i int) common.Address {
	return common.BigToAddress(big.NewInt(int64(0x1000 + i)))
}

func (s *RegistrySuite) TestKeyCap() {
	for i := 0; i < MaxKeysPerWallet; i++ {
		s.Require().NoError(s.register(signerN(i), PermissionExecute))
	}

	s.Run("cap counts only active keys", func() {
		s.ErrorIs(s.register(signerN(MaxKeysPerWallet), PermissionExecute), ErrMaxKeysPerWalletReached)

		_, err := s.call(s.wallet, func(f *chain.Frame) error {
			return s.registry.RevokeSessionKey(f, signerN(3))
		})
		s.Require().NoError(err)
		s.NoError(s.register(signerN(MaxKeysPerWallet), PermissionExecute))
	})

	s.Run("active signers keep registration order", func() {
		signers := s.registry.GetActiveSigners(s.wallet)
		s.Len(signers, MaxKeysPerWallet)
		s.Equal(signerN(0), signers[0])
		s.Equal(signerN(4), signers[3])
		s.Equal(signerN(MaxKeysPerWallet), signers[MaxKeysPerWallet-1])
	})

	s.Run("other wallets are unaffected", func() {
		_, err := s.call(s.signer, func(f *chain.Frame) error {
			return s.registry.RegisterSessionKey(f, signerN(0), s.unix(), s.unix()+60, PermissionExecute)
		})
		s.NoError(err)
		s.Equal(1, s.registry.ActiveKeyCount(s.signer))
	})
}

func (s *RegistrySuite) TestRevoke() {
	s.Require().NoError(s.register(s.signer, PermissionExecute))

	s.Run("unknown key is not found", func() {
		_, err := s.call(s.wallet, func(f *chain.Frame) error {
			return s.registry.RevokeSessionKey(f, s.backend)
		})
		var notFound *SessionKeyNotFoundError
		s.ErrorAs(err, &notFound)
	})

	s.Run("strangers cannot revoke for a wallet", func() {
		_, err := s.call(s.backend, func(f *chain.Frame) error {
			return s.registry.RevokeSessionKeyFor(f, s.wallet, s.signer)
		})
		s.ErrorIs(err, ErrUnauthorizedCaller)
	})

	s.Run("the signer may revoke itself", func() {
		receipt, err := s.call(s.signer, func(f *chain.Frame) error {
			return s.registry.RevokeSessionKeyFor(f, s.wallet, s.signer)
		})
		s.Require().NoError(err)
		s.Equal(SessionKeyRevoked{Wallet: s.wallet, Signer: s.signer, RevokedBy: s.signer}, receipt.Logs[0].Event)

		key, ok := s.registry.GetSessionKey(s.wallet, s.signer)
		s.True(ok)
		s.False(key.Active)
		s.Empty(s.registry.GetActiveSigners(s.wallet))
	})

	s.Run("revoking twice fails", func() {
		_, err := s.call(s.wallet, func(f *chain.Frame) error {
			return s.registry.RevokeSessionKey(f, s.signer)
		})
		var notFound *SessionKeyNotFoundError
		s.ErrorAs(err, &notFound)
	})
}

func (s *RegistrySuite) TestAuthorizedCallers() {
	s.Run("only the owner manages the set", func() {
		_, err := s.call(s.backend, func(f *chain.Frame) error {
			return s.registry.SetAuthorizedCaller(f, s.backend, true)
		})
		var unauthorized *access.OwnableUnauthorizedAccountError
		s.ErrorAs(err, &unauthorized)
	})

	s.Run("unauthorized backend cannot register", func() {
		_, err := s.call(s.backend, func(f *chain.Frame) error {
			return s.registry.RegisterSessionKeyFor(f, s.wallet, s.signer, s.unix(), s.unix()+60, PermissionExecute)
		})
		s.ErrorIs(err, ErrUnauthorizedCaller)
	})

	s.Run("authorized backend registers and revokes", func() {
		_, err := s.call(s.admin, func(f *chain.Frame) error {
			return s.registry.SetAuthorizedCaller(f, s.backend, true)
		})
		s.Require().NoError(err)
		s.True(s.registry.IsAuthorizedCaller(s.backend))

		_, err = s.call(s.backend, func(f *chain.Frame) error {
			return s.registry.RegisterSessionKeyFor(f, s.wallet, s.signer, s.unix(), s.unix()+60, PermissionExecute)
		})
		s.Require().NoError(err)
		s.True(s.validate(s.signer, PermissionExecute))

		_, err = s.call(s.backend, func(f *chain.Frame) error {
			return s.registry.RevokeSessionKeyFor(f, s.wallet, s.signer)
		})
		s.Require().NoError(err)
		s.False(s.validate(s.signer, PermissionExecute))
	})

	s.Run("removal revokes the authorization", func() {
		_, err := s.call(s.admin, func(f *chain.Frame) error {
			return s.registry.SetAuthorizedCaller(f, s.backend, false)
		})
		s.Require().NoError(err)
		s.False(s.registry.IsAuthorizedCaller(s.backend))
	})
}

func (s *RegistrySuite) TestValidate() {
	s.Require().NoError(s.register(s.signer, PermissionExecute))

	s.Run("missing permission fails", func() {
		s.True(s.validate(s.signer, PermissionExecute))
		s.False(s.validate(s.signer, PermissionExecuteBatch))
	})

	s.Run("unknown signer fails", func() {
		s.False(s.validate(s.backend, 0))
	})

	s.Run("window is half open", func() {
		start := s.now
		s.now = start.Add(3599 * time.Second)
		s.True(s.validate(s.signer, PermissionExecute))
		s.now = start.Add(3600 * time.Second)
		s.False(s.validate(s.signer, PermissionExecute))
		s.now = start
	})

	s.Run("future keys are not yet valid", func() {
		later := s.backend
		_, err := s.call(s.wallet, func(f *chain.Frame) error {
			return s.registry.RegisterSessionKey(f, later, s.unix()+100, s.unix()+200, PermissionAll)
		})
		s.Require().NoError(err)
		s.False(s.validate(later, PermissionExecute))
	})

	s.Run("inactive keys never validate", func() {
		_, err := s.call(s.wallet, func(f *chain.Frame) error {
			return s.registry.RevokeSessionKey(f, s.signer)
		})
		s.Require().NoError(err)
		for _, perms := range []Permission{0, PermissionExecute, PermissionAll} {
			s.False(s.validate(s.signer, perms))
		}
	})
}

func (s *RegistrySuite) TestUpdate() {
	s.Require().NoError(s.register(s.signer, PermissionExecute))

	s.Run("update extends the key", func() {
		receipt, err := s.call(s.wallet, func(f *chain.Frame) error {
			return s.registry.UpdateSessionKey(f, s.signer, s.unix()+7200, PermissionAll)
		})
		s.Require().NoError(err)
		s.Equal("SessionKeyUpdated", receipt.Logs[0].Event.EventName())
		key, _ := s.registry.GetSessionKey(s.wallet, s.signer)
		s.Equal(s.unix()+7200, key.ValidUntil)
		s.Equal(PermissionAll, key.Permissions)
	})

	s.Run("update keeps window rules", func() {
		_, err := s.call(s.wallet, func(f *chain.Frame) error {
			return s.registry.UpdateSessionKey(f, s.signer, s.unix(), PermissionAll)
		})
		s.ErrorIs(err, ErrInvalidValidityWindow)
	})

	s.Run("update of unknown key fails", func() {
		_, err := s.call(s.backend, func(f *chain.Frame) error {
			return s.registry.UpdateSessionKey(f, s.signer, s.unix()+60, PermissionAll)
		})
		var notFound *SessionKeyNotFoundError
		s.ErrorAs(err, &notFound)
	})
}

func (s *RegistrySuite) TestCalldata() {
	data, err := EncodeRegisterSessionKey(s.signer, s.unix(), s.unix()+600, PermissionExecute)
	s.Require().NoError(err)

	s.Run("wallet registers through calldata", func() {
		_, err := s.chain.Send(context.Background(), s.wallet, s.addr, nil, data)
		s.Require().NoError(err)
		s.True(s.validate(s.signer, PermissionExecute))
	})

	s.Run("validate returns an encoded bool", func() {
		query, err := EncodeValidateSessionKey(s.wallet, s.signer, PermissionExecute)
		s.Require().NoError(err)
		var out []byte
		err = s.chain.View(context.Background(), s.wallet, s.addr, func(f *chain.Frame) error {
			var err error
			out, err = s.registry.Receive(f, query)
			return err
		})
		s.Require().NoError(err)
		values, err := RegistryABI.Unpack("validateSessionKey", out)
		s.Require().NoError(err)
		s.Equal(true, values[0])
	})

	s.Run("revoke through calldata", func() {
		revoke, err := EncodeRevokeSessionKey(s.signer)
		s.Require().NoError(err)
		_, err = s.chain.Send(context.Background(), s.wallet, s.addr, nil, revoke)
		s.Require().NoError(err)
		s.False(s.validate(s.signer, PermissionExecute))
	})

	s.Run("unknown selector fails", func() {
		_, err := s.chain.Send(context.Background(), s.wallet, s.addr, nil, []byte{1, 2, 3, 4})
		s.ErrorIs(err, ErrUnknownSelector)
	})
}
