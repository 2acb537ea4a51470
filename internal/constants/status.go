package constants

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferAccepted  OfferStatus = "accepted"
	OfferRejected  OfferStatus = "rejected"
	OfferWithdrawn OfferStatus = "withdrawn"
)

func (s OfferStatus) Valid() bool {
	switch s {
	case OfferPending, OfferAccepted, OfferRejected, OfferWithdrawn:
		return true
	}
	return false
}

type DateType string

const (
	DateOn     DateType = "on_date"
	DateBefore DateType = "before_date"
	DateFlex   DateType = "flexible"
)

func (d DateType) Valid() bool {
	switch d {
	case DateOn, DateBefore, DateFlex:
		return true
	}
	return false
}

const DefaultCurrency = "USD"
