package store

type Status string

const (
	StatusNew       Status = "NEW"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

var validNext = map[Status]map[Status]bool{
	StatusNew:       {StatusPaid: true, StatusCancelled: true},
	StatusPaid:      {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

type Method string

const (
	MethodCard Method = "CARD"
	MethodACH  Method = "ACH"
	MethodCash Method = "CASH"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCard, MethodACH, MethodCash:
		return true
	}
	return false
}
