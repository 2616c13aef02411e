package model

import (
	"github.com/shopspring/decimal"
)

// Direction says which way an entry moves money for the receiver.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Transaction is one ACH entry detail read as a payment.
type Transaction struct {
	Line            int
	Batch           int // batch_number of the owning batch header
	Company         string
	SECCode         string
	EffectiveDate   string // YYMMDD as written in the batch header
	TransactionCode int
	Direction       Direction
	Amount          decimal.Decimal // positive = credit to receiver, negative = debit
	RoutingNumber   string          // receiving DFI id + check digit
	AccountNumber   string
	ReceiverName    string
	IndividualID    string
	TraceNumber     string
	Addenda         string // payment_information of the linked addendum
}
