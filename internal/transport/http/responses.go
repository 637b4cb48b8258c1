package httptransport

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"walletcore/internal/chain"
	"walletcore/internal/indexer"
	"walletcore/internal/service"
	"walletcore/internal/sso"
	"walletcore/internal/wallet"
)

// LogResponse is one event of a receipt.
type LogResponse struct {
	Index   uint           `json:"index"`
	Address common.Address `json:"address"`
	Event   string         `json:"event"`
	Data    chain.Event    `json:"data"`
}

// ReceiptResponse describes the ledger transaction a write produced.
type ReceiptResponse struct {
	TxHash      common.Hash    `json:"txHash"`
	From        common.Address `json:"from"`
	To          common.Address `json:"to"`
	BlockNumber uint64         `json:"blockNumber"`
	BlockTime   uint64         `json:"blockTime"`
	Status      string         `json:"status"`
	Logs        []LogResponse  `json:"logs"`
}

func FromReceipt(r *chain.Receipt) *ReceiptResponse {
	if r == nil {
		return nil
	}
	logs := make([]LogResponse, 0, len(r.Logs))
	for _, l := range r.Logs {
		logs = append(logs, LogResponse{
			Index:   l.Index,
			Address: l.Address,
			Event:   l.Event.EventName(),
			Data:    l.Event,
		})
	}
	return &ReceiptResponse{
		TxHash:      r.TxHash,
		From:        r.From,
		To:          r.To,
		BlockNumber: r.BlockNumber,
		BlockTime:   r.BlockTime,
		Status:      r.Status.String(),
		Logs:        logs,
	}
}

func amount(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

type WalletResponse struct {
	Wallet  common.Address   `json:"wallet"`
	Receipt *ReceiptResponse `json:"receipt,omitempty"`
}

type PoolResponse struct {
	Wallets []common.Address `json:"wallets"`
	Receipt *ReceiptResponse `json:"receipt,omitempty"`
}

type PredictResponse struct {
	Wallet common.Address `json:"wallet"`
	Salt   common.Hash    `json:"salt"`
}

type FactoryResponse struct {
	Address        common.Address `json:"address"`
	Owner          common.Address `json:"owner"`
	Implementation common.Address `json:"implementation"`
	EventEmitter   common.Address `json:"eventEmitter"`
	SSORegistry    common.Address `json:"ssoRegistry"`
	Paused         bool           `json:"paused"`
	TotalWallets   uint64         `json:"totalWallets"`
	Unassigned     int            `json:"unassigned"`
	DeployCounter  uint64         `json:"deployCounter"`
}

func FromFactoryStatus(st service.FactoryStatus) FactoryResponse {
	return FactoryResponse(st)
}

type ChainResponse struct {
	ChainID      string         `json:"chainId"`
	Height       uint64         `json:"height"`
	Admin        common.Address `json:"admin"`
	EventEmitter common.Address `json:"eventEmitter"`
	SSORegistry  common.Address `json:"ssoRegistry"`
	Template     common.Address `json:"template"`
	Factory      common.Address `json:"factory"`
}

func FromChainInfo(info service.ChainInfo) ChainResponse {
	return ChainResponse{
		ChainID:      info.ChainID.String(),
		Height:       info.Height,
		Admin:        info.Admin,
		EventEmitter: info.EventEmitter,
		SSORegistry:  info.SSORegistry,
		Template:     info.Template,
		Factory:      info.Factory,
	}
}

type ResultResponse struct {
	Nonce      uint64        `json:"nonce"`
	ReturnData hexutil.Bytes `json:"returnData"`
}

type ExecutionResponse struct {
	Results []ResultResponse `json:"results"`
	Receipt *ReceiptResponse `json:"receipt"`
}

func FromExecution(e *service.Execution) ExecutionResponse {
	return ExecutionResponse{
		Results: []ResultResponse{{Nonce: e.Result.Nonce, ReturnData: e.Result.ReturnData}},
		Receipt: FromReceipt(e.Receipt),
	}
}

func FromBatch(b *service.BatchExecution) ExecutionResponse {
	results := make([]ResultResponse, 0, len(b.Results))
	for _, r := range b.Results {
		results = append(results, ResultResponse{Nonce: r.Nonce, ReturnData: r.ReturnData})
	}
	return ExecutionResponse{Results: results, Receipt: FromReceipt(b.Receipt)}
}

type DigestResponse struct {
	Digest common.Hash `json:"digest"`
	Nonce  uint64      `json:"nonce"`
}

type WalletInfoResponse struct {
	Address      common.Address  `json:"address"`
	Owner        common.Address  `json:"owner"`
	State        wallet.State    `json:"state"`
	Nonce        uint64          `json:"nonce"`
	Balance      string          `json:"balance"`
	Factory      common.Address  `json:"factory"`
	Template     common.Address  `json:"template"`
	EventEmitter common.Address  `json:"eventEmitter"`
	SSORegistry  common.Address  `json:"ssoRegistry"`
	Metadata     wallet.Metadata `json:"metadata"`
}

func FromWalletInfo(info *service.WalletInfo) WalletInfoResponse {
	return WalletInfoResponse{
		Address:      info.Address,
		Owner:        info.Owner,
		State:        info.State,
		Nonce:        info.Nonce,
		Balance:      amount(info.Balance),
		Factory:      info.Factory,
		Template:     info.Template,
		EventEmitter: info.EventEmitter,
		SSORegistry:  info.SSORegistry,
		Metadata:     info.Metadata,
	}
}

type TransactionResponse struct {
	Nonce       uint64         `json:"nonce"`
	To          common.Address `json:"to"`
	Value       string         `json:"value"`
	Data        hexutil.Bytes  `json:"data"`
	Success     bool           `json:"success"`
	ReturnData  hexutil.Bytes  `json:"returnData"`
	Executor    common.Address `json:"executor"`
	BlockNumber uint64         `json:"blockNumber"`
	Timestamp   uint64         `json:"timestamp"`
}

func FromTransaction(tx *wallet.Transaction) TransactionResponse {
	return TransactionResponse{
		Nonce:       tx.Nonce,
		To:          tx.To,
		Value:       amount(tx.Value),
		Data:        tx.Data,
		Success:     tx.Success,
		ReturnData:  tx.ReturnData,
		Executor:    tx.Executor,
		BlockNumber: tx.BlockNumber,
		Timestamp:   tx.Timestamp,
	}
}

type BalanceResponse struct {
	Wallet  common.Address `json:"wallet"`
	Token   common.Address `json:"token"`
	Balance string         `json:"balance"`
}

type SessionKeyResponse struct {
	Wallet      common.Address `json:"wallet"`
	Signer      common.Address `json:"signer"`
	ValidAfter  uint64         `json:"validAfter"`
	ValidUntil  uint64         `json:"validUntil"`
	Permissions string         `json:"permissions"`
	Active      bool           `json:"active"`
}

func FromSessionKeys(keys []sso.SessionKey) []SessionKeyResponse {
	out := make([]SessionKeyResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, SessionKeyResponse{
			Wallet:      k.Wallet,
			Signer:      k.Signer,
			ValidAfter:  k.ValidAfter,
			ValidUntil:  k.ValidUntil,
			Permissions: k.Permissions.String(),
			Active:      k.Active,
		})
	}
	return out
}

type ValidationResponse struct {
	Valid bool `json:"valid"`
}

type AuthorizedCallerResponse struct {
	Caller  common.Address `json:"caller"`
	Allowed bool           `json:"allowed"`
}

type LedgerResponse struct {
	TotalTransactions uint64         `json:"totalTransactions"`
	Factory           common.Address `json:"factory"`
	Paused            bool           `json:"paused"`
}

type OwnerResponse struct {
	Wallet common.Address `json:"wallet"`
	Owner  common.Address `json:"owner"`
}

type RecordResponse struct {
	ID          string          `json:"id"`
	TxHash      common.Hash     `json:"txHash"`
	LogIndex    uint            `json:"logIndex"`
	BlockNumber uint64          `json:"blockNumber"`
	BlockTime   uint64          `json:"blockTime"`
	Contract    common.Address  `json:"contract"`
	Event       string          `json:"event"`
	Wallet      common.Address  `json:"wallet"`
	Sequence    uint64          `json:"sequence,omitempty"`
	Payload     json.RawMessage `json:"payload"`
}

type RecordsResponse struct {
	Records []RecordResponse `json:"records"`
}

func FromRecords(records []indexer.Record) RecordsResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, RecordResponse{
			ID:          r.ID.String(),
			TxHash:      r.TxHash,
			LogIndex:    r.LogIndex,
			BlockNumber: r.BlockNumber,
			BlockTime:   r.BlockTime,
			Contract:    r.Contract,
			Event:       r.Event,
			Wallet:      r.Wallet,
			Sequence:    r.Sequence,
			Payload:     r.Payload,
		})
	}
	return RecordsResponse{Records: out}
}

type ReceiptOnlyResponse struct {
	Receipt *ReceiptResponse `json:"receipt"`
}
