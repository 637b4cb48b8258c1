// Package deploy bootstraps the contract set on a fresh chain.
package deploy

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
	"walletcore/internal/factory"
	"walletcore/internal/ledger"
	"walletcore/internal/sso"
	"walletcore/internal/wallet"
)

// TemplateVersion labels the wallet implementation deployed at genesis.
const TemplateVersion = "1.0.0"

// Contracts is the deployed contract set.
type Contracts struct {
	Admin common.Address

	EventEmitter     *ledger.EventEmitter
	EventEmitterAddr common.Address
	Registry         *sso.Registry
	RegistryAddr     common.Address
	Template         *wallet.Template
	TemplateAddr     common.Address
	Factory          *factory.Factory
	FactoryAddr      common.Address
}

// Genesis deploys the event emitter, session key registry, wallet template
// and factory from admin, then points the emitter at the factory. admin owns
// every deployed contract.
func Genesis(ctx context.Context, c *chain.Chain, admin common.Address) (*Contracts, error) {
	out := &Contracts{Admin: admin, Template: &wallet.Template{Version: TemplateVersion}}

	var err error
	out.EventEmitterAddr, _, err = c.Deploy(ctx, admin, func(f *chain.Frame) (any, error) {
		var err error
		out.EventEmitter, err = ledger.New(f)
		return out.EventEmitter, err
	})
	if err != nil {
		return nil, fmt.Errorf("deploy event emitter: %w", err)
	}

	out.RegistryAddr, _, err = c.Deploy(ctx, admin, func(f *chain.Frame) (any, error) {
		var err error
		out.Registry, err = sso.New(f)
		return out.Registry, err
	})
	if err != nil {
		return nil, fmt.Errorf("deploy session key registry: %w", err)
	}

	out.TemplateAddr, _, err = c.Deploy(ctx, admin, func(*chain.Frame) (any, error) {
		return out.Template, nil
	})
	if err != nil {
		return nil, fmt.Errorf("deploy wallet template: %w", err)
	}

	out.FactoryAddr, _, err = c.Deploy(ctx, admin, func(f *chain.Frame) (any, error) {
		var err error
		out.Factory, err = factory.New(f, out.TemplateAddr, out.EventEmitterAddr, out.RegistryAddr)
		return out.Factory, err
	})
	if err != nil {
		return nil, fmt.Errorf("deploy factory: %w", err)
	}

	if _, err := c.Apply(ctx, admin, out.EventEmitterAddr, func(f *chain.Frame) error {
		return out.EventEmitter.SetFactory(f, out.FactoryAddr)
	}); err != nil {
		return nil, fmt.Errorf("bind factory to event emitter: %w", err)
	}
	return out, nil
}
