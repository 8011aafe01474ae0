package chain

// rpcRequest is a JSON-RPC 2.0 request envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// rpcError is a JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Receipt is the subset of an EVM transaction receipt the payment
// verifier needs. Quantities stay hex-encoded strings as returned by
// eth_getTransactionReceipt.
type Receipt struct {
	TransactionHash string `json:"transactionHash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Status          string `json:"status"`
	BlockNumber     string `json:"blockNumber"`
}

// Succeeded reports whether the transaction executed without revert.
func (r *Receipt) Succeeded() bool {
	return r.Status == "0x1"
}

// Transaction is the subset of eth_getTransactionByHash the verifier
// uses when a receipt's to field is empty (contract creation).
type Transaction struct {
	Hash  string `json:"hash"`
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
	Input string `json:"input"`
}
