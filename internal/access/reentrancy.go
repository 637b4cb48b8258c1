package access

import "walletcore/internal/chain"

// ReentrancyGuard rejects nested entry into guarded operations.
type ReentrancyGuard struct {
	entered bool
}

// Enter marks the guard as entered. The returned release must run on every
// exit path, typically deferred.
func (g *ReentrancyGuard) Enter(f *chain.Frame) (release func(), err error) {
	if g.entered {
		return nil, ErrReentrantCall
	}
	chain.Set(f, &g.entered, true)
	return func() { chain.Set(f, &g.entered, false) }, nil
}

func (g *ReentrancyGuard) Entered() bool {
	return g.entered
}
