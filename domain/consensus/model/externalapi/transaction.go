package externalapi

// DomainTransaction is a transaction as the consensus kernel sees it: an
// identifier and its raw serialization. Script and amount semantics belong
// to other subsystems.
type DomainTransaction struct {
	ID      DomainHash
	Payload []byte
}

// Clone returns a clone of DomainTransaction
func (tx *DomainTransaction) Clone() *DomainTransaction {
	payloadClone := make([]byte, len(tx.Payload))
	copy(payloadClone, tx.Payload)
	return &DomainTransaction{ID: tx.ID, Payload: payloadClone}
}
