package nodetest

// TransactionMessage builds a push message for a transaction channel
// (confirmedAdded, unconfirmedAdded, partialAdded and so on).
func TransactionMessage(channel, hash, address string) map[string]any {
	return map[string]any{
		"transaction": map[string]any{"type": 0},
		"meta": map[string]any{
			"channelName": channel,
			"hash":        hash,
			"address":     address,
			"height":      []uint32{42, 0},
		},
	}
}

// RemovedMessage builds the hash-only form used by unconfirmedRemoved and partialRemoved.
func RemovedMessage(channel, hash, address string) map[string]any {
	return map[string]any{
		"meta": map[string]any{
			"channelName": channel,
			"hash":        hash,
			"address":     address,
		},
	}
}

// StatusMessage builds a status channel message reporting a rejection.
func StatusMessage(hash, status, address string) map[string]any {
	return map[string]any{
		"hash":     hash,
		"status":   status,
		"deadline": []uint32{1000, 0},
		"address":  address,
	}
}

// CosignatureMessage builds a cosignature channel message.
func CosignatureMessage(parentHash, signer, signature, address string) map[string]any {
	return map[string]any{
		"parentHash": parentHash,
		"signer":     signer,
		"signature":  signature,
		"address":    address,
	}
}

// BlockMessage builds a block channel message.
func BlockMessage(height uint32) map[string]any {
	return map[string]any{
		"block": map[string]any{"height": []uint32{height, 0}},
		"meta":  map[string]any{"hash": "AB00000000000000000000000000000000000000000000000000000000000000"},
	}
}
