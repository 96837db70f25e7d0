package entity

// TransactionLog is the append-only, in-memory history of one account for the current process
type TransactionLog struct {
	records []TransactionRecord
}

// NewTransactionLog creates an empty log
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{}
}

// Append adds a record at the end of the log
func (l *TransactionLog) Append(record TransactionRecord) {
	l.records = append(l.records, record)
}

// Records returns a copy of the log in insertion order
func (l *TransactionLog) Records() []TransactionRecord {
	out := make([]TransactionRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records
func (l *TransactionLog) Len() int {
	return len(l.records)
}
