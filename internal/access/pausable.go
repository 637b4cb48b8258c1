package access

import (
	"github.com/ethereum/go-ethereum/common"

	"walletcore/internal/chain"
)

type Paused struct {
	Account common.Address `json:"account"`
}

func (Paused) EventName() string { return "Paused" }

type Unpaused struct {
	Account common.Address `json:"account"`
}

func (Unpaused) EventName() string { return "Unpaused" }

// Pausable is a two-state switch. Callers decide who may flip it.
type Pausable struct {
	paused bool
}

func (p *Pausable) Paused() bool {
	return p.paused
}

func (p *Pausable) WhenNotPaused() error {
	if p.paused {
		return ErrEnforcedPause
	}
	return nil
}

func (p *Pausable) WhenPaused() error {
	if !p.paused {
		return ErrExpectedPause
	}
	return nil
}

func (p *Pausable) Pause(f *chain.Frame) error {
	if err := p.WhenNotPaused(); err != nil {
		return err
	}
	chain.Set(f, &p.paused, true)
	f.Emit(Paused{Account: f.Caller()})
	return nil
}

func (p *Pausable) Unpause(f *chain.Frame) error {
	if err := p.WhenPaused(); err != nil {
		return err
	}
	chain.Set(f, &p.paused, false)
	f.Emit(Unpaused{Account: f.Caller()})
	return nil
}
