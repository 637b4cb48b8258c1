// Package token is a minimal fungible token contract with an ERC-20 calldata
// interface, used to exercise token transfers through wallet execution.
package token

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"walletcore/internal/access"
	"walletcore/internal/chain"
	dErrors "walletcore/pkg/domain-errors"
)

const erc20ABIJSON = `[
  {"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[
    {"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[
    {"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[
    {"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[]}
]`

var ERC20ABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}()

var (
	ErrUnknownSelector = chain.NewRevert("UnknownSelector", dErrors.CodeInvalidInput, "unknown function selector")
	ErrInvalidReceiver = chain.NewRevert("ERC20InvalidReceiver", dErrors.CodeInvalidInput, "transfer to the zero address")
	ErrNotPayable      = chain.NewRevert("NotPayable", dErrors.CodeInvalidInput, "token does not accept value")
)

type InsufficientBalanceError struct {
	Sender  common.Address
	Balance *uint256.Int
	Needed  *uint256.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("erc20: %s has %s, needs %s", e.Sender.Hex(), e.Balance, e.Needed)
}

func (e *InsufficientBalanceError) RevertName() string { return "ERC20InsufficientBalance" }

func (e *InsufficientBalanceError) ErrorCode() dErrors.Code { return dErrors.CodeExecutionFailed }

type Transfer struct {
	From  common.Address `json:"from"`
	To    common.Address `json:"to"`
	Value *uint256.Int   `json:"value"`
}

func (Transfer) EventName() string { return "Transfer" }

type Token struct {
	access.Ownable

	Name     string
	Symbol   string
	supply   *uint256.Int
	balances map[common.Address]*uint256.Int
}

// New is the token constructor. The deployer becomes the minter.
func New(f *chain.Frame, name, symbol string) (*Token, error) {
	owner, err := access.NewOwnable(f, f.Caller())
	if err != nil {
		return nil, err
	}
	return &Token{
		Ownable:  owner,
		Name:     name,
		Symbol:   symbol,
		supply:   new(uint256.Int),
		balances: make(map[common.Address]*uint256.Int),
	}, nil
}

func (t *Token) Mint(f *chain.Frame, to common.Address, amount *uint256.Int) error {
	if err := t.CheckOwner(f); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return ErrInvalidReceiver
	}
	chain.Set(f, &t.supply, new(uint256.Int).Add(t.supply, amount))
	chain.SetKey(f, t.balances, to, new(uint256.Int).Add(t.BalanceOf(to), amount))
	f.Emit(Transfer{To: to, Value: new(uint256.Int).Set(amount)})
	return nil
}

// Transfer moves amount from the caller to to.
func (t *Token) Transfer(f *chain.Frame, to common.Address, amount *uint256.Int) error {
	from := f.Caller()
	if to == (common.Address{}) {
		return ErrInvalidReceiver
	}
	balance := t.BalanceOf(from)
	if balance.Lt(amount) {
		return &InsufficientBalanceError{Sender: from, Balance: balance, Needed: new(uint256.Int).Set(amount)}
	}
	chain.SetKey(f, t.balances, from, new(uint256.Int).Sub(balance, amount))
	chain.SetKey(f, t.balances, to, new(uint256.Int).Add(t.BalanceOf(to), amount))
	f.Emit(Transfer{From: from, To: to, Value: new(uint256.Int).Set(amount)})
	return nil
}

func (t *Token) BalanceOf(account common.Address) *uint256.Int {
	if b, ok := t.balances[account]; ok {
		return new(uint256.Int).Set(b)
	}
	return new(uint256.Int)
}

func (t *Token) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(t.supply)
}

func (t *Token) Receive(f *chain.Frame, data []byte) ([]byte, error) {
	if !f.Value().IsZero() {
		return nil, ErrNotPayable
	}
	if len(data) < 4 {
		return nil, ErrUnknownSelector
	}
	method, err := ERC20ABI.MethodById(data[:4])
	if err != nil {
		return nil, ErrUnknownSelector
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, ErrUnknownSelector
	}

	switch method.Name {
	case "transfer":
		if err := t.Transfer(f, args[0].(common.Address), uint256.MustFromBig(args[1].(*big.Int))); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case "balanceOf":
		return method.Outputs.Pack(t.BalanceOf(args[0].(common.Address)).ToBig())
	case "totalSupply":
		return method.Outputs.Pack(t.supply.ToBig())
	case "mint":
		return nil, t.Mint(f, args[0].(common.Address), uint256.MustFromBig(args[1].(*big.Int)))
	default:
		return nil, ErrUnknownSelector
	}
}

func EncodeTransfer(to common.Address, amount *uint256.Int) ([]byte, error) {
	return ERC20ABI.Pack("transfer", to, amount.ToBig())
}

func EncodeMint(to common.Address, amount *uint256.Int) ([]byte, error) {
	return ERC20ABI.Pack("mint", to, amount.ToBig())
}

func EncodeBalanceOf(account common.Address) ([]byte, error) {
	return ERC20ABI.Pack("balanceOf", account)
}

// DecodeBalance decodes the return data of balanceOf.
func DecodeBalance(ret []byte) (*uint256.Int, error) {
	values, err := ERC20ABI.Unpack("balanceOf", ret)
	if err != nil {
		return nil, err
	}
	n, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf return type %T", values[0])
	}
	v, overflow := uint256.FromBig(n)
	if overflow {
		return nil, fmt.Errorf("balance overflows 256 bits")
	}
	return v, nil
}
