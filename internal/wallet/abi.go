package wallet

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"walletcore/internal/chain"
	dErrors "walletcore/pkg/domain-errors"
)

const walletABIJSON = `[
  {"type":"function","name":"execute","stateMutability":"payable","inputs":[
    {"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"}],
    "outputs":[{"name":"","type":"bytes"}]},
  {"type":"function","name":"executeBatch","stateMutability":"payable","inputs":[
    {"name":"targets","type":"address[]"},{"name":"values","type":"uint256[]"},{"name":"datas","type":"bytes[]"}],
    "outputs":[]},
  {"type":"function","name":"nonce","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

// WalletABI is the calldata interface of a wallet.
var WalletABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(walletABIJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}()

func EncodeExecute(to common.Address, value *uint256.Int, data []byte) ([]byte, error) {
	if value == nil {
		value = new(uint256.Int)
	}
	return WalletABI.Pack("execute", to, value.ToBig(), data)
}

func EncodeExecuteBatch(calls []Call) ([]byte, error) {
	targets := make([]common.Address, len(calls))
	values := make([]*big.Int, len(calls))
	datas := make([][]byte, len(calls))
	for i, c := range calls {
		targets[i] = c.To
		values[i] = new(big.Int)
		if c.Value != nil {
			values[i] = c.Value.ToBig()
		}
		datas[i] = c.Data
		if datas[i] == nil {
			datas[i] = []byte{}
		}
	}
	return WalletABI.Pack("executeBatch", targets, values, datas)
}

func (w *Wallet) dispatch(f *chain.Frame, data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, ErrUnknownSelector
	}
	method, err := WalletABI.MethodById(data[:4])
	if err != nil {
		return nil, ErrUnknownSelector
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, invalidCalldata(method.Name, err.Error())
	}

	switch method.Name {
	case "execute":
		value, err := uintArg(method.Name, args[1].(*big.Int))
		if err != nil {
			return nil, err
		}
		res, err := w.Execute(f, args[0].(common.Address), value, args[2].([]byte))
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(res.ReturnData)
	case "executeBatch":
		bigValues := args[1].([]*big.Int)
		values := make([]*uint256.Int, len(bigValues))
		for i, v := range bigValues {
			var err error
			if values[i], err = uintArg(method.Name, v); err != nil {
				return nil, err
			}
		}
		_, err := w.ExecuteBatch(f, args[0].([]common.Address), values, args[2].([][]byte))
		return nil, err
	case "nonce":
		return method.Outputs.Pack(new(big.Int).SetUint64(w.nonce))
	default:
		return nil, ErrUnknownSelector
	}
}

func invalidCalldata(method, reason string) error {
	return chain.NewRevert("InvalidCalldata", dErrors.CodeInvalidInput, "decode "+method+": "+reason)
}

// uintArg converts a decoded uint256 argument.
func uintArg(method string, v *big.Int) (*uint256.Int, error) {
	if v == nil || v.Sign() < 0 {
		return nil, invalidCalldata(method, "negative value")
	}
	value, overflow := uint256.FromBig(v)
	if overflow {
		return nil, invalidCalldata(method, "value exceeds 256 bits")
	}
	return value, nil
}
