package ledger

const (
	accountStorageOverhead = 128
	lamportsPerByteYear    = 3480
	rentExemptionYears     = 2
)

// RentMinimum returns the lamport floor an account of the given data size must
// hold to stay alive.
func RentMinimum(dataLen int) uint64 {
	return uint64(accountStorageOverhead+dataLen) * lamportsPerByteYear * rentExemptionYears
}
