// Package factory deploys wallets as deterministic clones of a shared
// implementation, keeps the pool of pre-deployed unassigned wallets and
// registers every wallet it creates with the event emitter.
package factory

import (
	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/access"
	"walletcore/internal/chain"
)

// MaxDeployBatch bounds DeployWallets.
const MaxDeployBatch = 100

// Implementation is a wallet template the factory can clone.
type Implementation interface {
	NewInstance(f *chain.Frame, template common.Address) (any, error)
}

// Wallet is the behavior the factory needs from a deployed clone.
type Wallet interface {
	Initialize(f *chain.Frame, owner, eventEmitter, ssoRegistry common.Address) error
	AssignOwner(f *chain.Frame, newOwner common.Address) error
	Owner() common.Address
}

// Registrar records factory wallets in the event emitter.
type Registrar interface {
	RegisterWallet(f *chain.Frame, wallet, walletOwner common.Address) error
	DeregisterWallet(f *chain.Frame, wallet common.Address) error
	UpdateWalletOwner(f *chain.Frame, wallet, walletOwner common.Address) error
}

type Factory struct {
	access.Ownable
	access.Pausable

	implementation common.Address
	eventEmitter   common.Address
	ssoRegistry    common.Address

	deployCounter uint64
	wallets       map[common.Address]bool
	ownerWallets  map[common.Address]common.Address
	totalWallets  uint64
	pool          []common.Address
	poolIndex     map[common.Address]int
}

// New is the factory constructor. The deployer becomes the owner.
func New(f *chain.Frame, implementation, eventEmitter, ssoRegistry common.Address) (*Factory, error) {
	if implementation == (common.Address{}) || eventEmitter == (common.Address{}) {
		return nil, ErrInvalidAddress
	}
	owner, err := access.NewOwnable(f, f.Caller())
	if err != nil {
		return nil, err
	}
	return &Factory{
		Ownable:        owner,
		implementation: implementation,
		eventEmitter:   eventEmitter,
		ssoRegistry:    ssoRegistry,
		wallets:        make(map[common.Address]bool),
		ownerWallets:   make(map[common.Address]common.Address),
		poolIndex:      make(map[common.Address]int),
	}, nil
}

// CreateWallet deploys a wallet for owner at the default salt.
func (fa *Factory) CreateWallet(f *chain.Frame, owner common.Address) (common.Address, error) {
	return fa.CreateWalletWithSalt(f, owner, fa.DefaultSalt(owner))
}

// CreateWalletWithSalt deploys a wallet for owner at salt. Callers may create
// a wallet for themselves; the factory owner may create one for anyone.
func (fa *Factory) CreateWalletWithSalt(f *chain.Frame, owner common.Address, salt common.Hash) (common.Address, error) {
	if err := fa.WhenNotPaused(); err != nil {
		return common.Address{}, err
	}
	if f.Caller() != owner && f.Caller() != fa.Owner() {
		return common.Address{}, ErrUnauthorizedCaller
	}
	if owner == (common.Address{}) {
		return common.Address{}, &access.OwnableInvalidOwnerError{Owner: owner}
	}
	if existing, ok := fa.ownerWallets[owner]; ok {
		return common.Address{}, &WalletAlreadyExistsError{Owner: owner, Wallet: existing}
	}

	addr, err := fa.deploy(f, owner, salt)
	if err != nil {
		return common.Address{}, err
	}
	chain.SetKey(f, fa.ownerWallets, owner, addr)
	f.Emit(WalletCreated{Wallet: addr, Owner: owner, Salt: salt})
	return addr, nil
}

// DeployWallets pre-deploys count unowned wallets into the pool.
func (fa *Factory) DeployWallets(f *chain.Frame, count int) ([]common.Address, error) {
	if err := fa.CheckOwner(f); err != nil {
		return nil, err
	}
	if err := fa.WhenNotPaused(); err != nil {
		return nil, err
	}
	if count < 1 || count > MaxDeployBatch {
		return nil, &InvalidCountError{Count: count}
	}

	deployed := make([]common.Address, 0, count)
	for i := 0; i < count; i++ {
		addr, err := fa.deploy(f, common.Address{}, fa.DefaultSalt(common.Address{}))
		if err != nil {
			return nil, err
		}
		index := len(fa.pool)
		chain.Append(f, &fa.pool, addr)
		chain.SetKey(f, fa.poolIndex, addr, index)
		f.Emit(WalletPreDeployed{Wallet: addr, Index: uint64(index)})
		deployed = append(deployed, addr)
	}
	return deployed, nil
}

// AssignWallet binds newOwner to a pooled wallet and removes it from the
// pool. Pool order is not preserved.
func (fa *Factory) AssignWallet(f *chain.Frame, wallet, newOwner common.Address) error {
	if err := fa.CheckOwner(f); err != nil {
		return err
	}
	if err := fa.WhenNotPaused(); err != nil {
		return err
	}
	if !fa.wallets[wallet] {
		return &WalletNotFromFactoryError{Wallet: wallet}
	}
	index, pooled := fa.poolIndex[wallet]
	if !pooled {
		return &WalletNotUnassignedError{Wallet: wallet}
	}
	if newOwner == (common.Address{}) {
		return &access.OwnableInvalidOwnerError{Owner: newOwner}
	}
	if existing, ok := fa.ownerWallets[newOwner]; ok {
		return &WalletAlreadyExistsError{Owner: newOwner, Wallet: existing}
	}

	fa.removeFromPool(f, wallet, index)
	chain.SetKey(f, fa.ownerWallets, newOwner, wallet)

	w, err := chain.Resolve[Wallet](f, wallet)
	if err != nil {
		return err
	}
	if err := f.Invoke(wallet, func(child *chain.Frame) error {
		return w.AssignOwner(child, newOwner)
	}); err != nil {
		return err
	}
	registrar, err := chain.Resolve[Registrar](f, fa.eventEmitter)
	if err != nil {
		return err
	}
	if err := f.Invoke(fa.eventEmitter, func(child *chain.Frame) error {
		return registrar.UpdateWalletOwner(child, wallet, newOwner)
	}); err != nil {
		return err
	}
	f.Emit(WalletAssigned{Wallet: wallet, Owner: newOwner})
	return nil
}

// RetireWallet detaches a factory wallet: it leaves the pool or frees its
// owner's slot, and the event emitter stops accepting its transactions.
func (fa *Factory) RetireWallet(f *chain.Frame, wallet common.Address) error {
	if err := fa.CheckOwner(f); err != nil {
		return err
	}
	if err := fa.WhenNotPaused(); err != nil {
		return err
	}
	if !fa.wallets[wallet] {
		return &WalletNotFromFactoryError{Wallet: wallet}
	}

	var owner common.Address
	if index, pooled := fa.poolIndex[wallet]; pooled {
		fa.removeFromPool(f, wallet, index)
	} else {
		// Keyed by the owner at binding time, which TransferOwnership on the
		// wallet does not update.
		for o, addr := range fa.ownerWallets {
			if addr == wallet {
				owner = o
				break
			}
		}
		chain.DeleteKey(f, fa.ownerWallets, owner)
	}
	chain.DeleteKey(f, fa.wallets, wallet)

	registrar, err := chain.Resolve[Registrar](f, fa.eventEmitter)
	if err != nil {
		return err
	}
	if err := f.Invoke(fa.eventEmitter, func(child *chain.Frame) error {
		return registrar.DeregisterWallet(child, wallet)
	}); err != nil {
		return err
	}
	f.Emit(WalletRetired{Wallet: wallet, Owner: owner})
	return nil
}

// removeFromPool swap-removes the pooled wallet at index.
func (fa *Factory) removeFromPool(f *chain.Frame, wallet common.Address, index int) {
	last := fa.pool[len(fa.pool)-1]
	chain.Swap(f, &fa.pool, index)
	if last != wallet {
		chain.SetKey(f, fa.poolIndex, last, index)
	}
	chain.DeleteKey(f, fa.poolIndex, wallet)
}

// SetImplementation changes the template used by future deployments.
func (fa *Factory) SetImplementation(f *chain.Frame, implementation common.Address) error {
	if err := fa.CheckOwner(f); err != nil {
		return err
	}
	if implementation == (common.Address{}) {
		return ErrInvalidAddress
	}
	if _, err := chain.Resolve[Implementation](f, implementation); err != nil {
		return err
	}
	previous := fa.implementation
	chain.Set(f, &fa.implementation, implementation)
	f.Emit(ImplementationUpdated{PreviousImplementation: previous, NewImplementation: implementation})
	return nil
}

// SetEventEmitter changes the emitter future wallets report to.
func (fa *Factory) SetEventEmitter(f *chain.Frame, eventEmitter common.Address) error {
	if err := fa.CheckOwner(f); err != nil {
		return err
	}
	if eventEmitter == (common.Address{}) {
		return ErrInvalidAddress
	}
	previous := fa.eventEmitter
	chain.Set(f, &fa.eventEmitter, eventEmitter)
	f.Emit(EventEmitterUpdated{PreviousEventEmitter: previous, NewEventEmitter: eventEmitter})
	return nil
}

// SetSSORegistry changes the registry future wallets consult.
func (fa *Factory) SetSSORegistry(f *chain.Frame, ssoRegistry common.Address) error {
	if err := fa.CheckOwner(f); err != nil {
		return err
	}
	previous := fa.ssoRegistry
	chain.Set(f, &fa.ssoRegistry, ssoRegistry)
	f.Emit(SSORegistryUpdated{PreviousSSORegistry: previous, NewSSORegistry: ssoRegistry})
	return nil
}

func (fa *Factory) Pause(f *chain.Frame) error {
	if err := fa.CheckOwner(f); err != nil {
		return err
	}
	return fa.Pausable.Pause(f)
}

func (fa *Factory) Unpause(f *chain.Frame) error {
	if err := fa.CheckOwner(f); err != nil {
		return err
	}
	return fa.Pausable.Unpause(f)
}

// DefaultSalt is the salt CreateWallet would use for owner now.
func (fa *Factory) DefaultSalt(owner common.Address) common.Hash {
	return DeriveSalt(owner, fa.deployCounter)
}

// PredictWalletAddress mirrors the deployment address computation for owner
// at salt against the current implementation. A zero salt stands for the
// default salt of owner. It returns the salt it used.
func (fa *Factory) PredictWalletAddress(f *chain.Frame, owner common.Address, salt common.Hash) (common.Address, common.Hash) {
	if salt == (common.Hash{}) {
		salt = fa.DefaultSalt(owner)
	}
	return PredictAddress(f.Self(), fa.implementation, salt), salt
}

func (fa *Factory) IsWallet(addr common.Address) bool {
	return fa.wallets[addr]
}

// GetWallet returns the wallet bound to owner by this factory.
func (fa *Factory) GetWallet(owner common.Address) (common.Address, bool) {
	addr, ok := fa.ownerWallets[owner]
	return addr, ok
}

func (fa *Factory) TotalWallets() uint64 {
	return fa.totalWallets
}

func (fa *Factory) UnassignedCount() int {
	return len(fa.pool)
}

func (fa *Factory) UnassignedWalletAt(i int) (common.Address, error) {
	if i < 0 || i >= len(fa.pool) {
		return common.Address{}, &IndexOutOfRangeError{Index: i, Length: len(fa.pool)}
	}
	return fa.pool[i], nil
}

func (fa *Factory) Implementation() common.Address {
	return fa.implementation
}

func (fa *Factory) EventEmitter() common.Address {
	return fa.eventEmitter
}

func (fa *Factory) SSORegistry() common.Address {
	return fa.ssoRegistry
}

func (fa *Factory) DeployCounter() uint64 {
	return fa.deployCounter
}

// deploy clones the implementation at salt, initializes the clone and
// registers it with the event emitter.
func (fa *Factory) deploy(f *chain.Frame, owner common.Address, salt common.Hash) (common.Address, error) {
	impl, err := chain.Resolve[Implementation](f, fa.implementation)
	if err != nil {
		return common.Address{}, err
	}
	template := fa.implementation
	addr, err := f.Create2(salt, CloneInitCodeHash(template), func(child *chain.Frame) (any, error) {
		return impl.NewInstance(child, template)
	})
	if err != nil {
		return common.Address{}, err
	}

	w, err := chain.Resolve[Wallet](f, addr)
	if err != nil {
		return common.Address{}, err
	}
	if err := f.Invoke(addr, func(child *chain.Frame) error {
		return w.Initialize(child, owner, fa.eventEmitter, fa.ssoRegistry)
	}); err != nil {
		return common.Address{}, err
	}

	registrar, err := chain.Resolve[Registrar](f, fa.eventEmitter)
	if err != nil {
		return common.Address{}, err
	}
	if err := f.Invoke(fa.eventEmitter, func(child *chain.Frame) error {
		return registrar.RegisterWallet(child, addr, owner)
	}); err != nil {
		return common.Address{}, err
	}

	chain.SetKey(f, fa.wallets, addr, true)
	chain.Set(f, &fa.totalWallets, fa.totalWallets+1)
	chain.Set(f, &fa.deployCounter, fa.deployCounter+1)
	return addr, nil
}
