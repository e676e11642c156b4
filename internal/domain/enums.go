package domain

// FulfillmentStatus is Shopify's displayFulfillmentStatus for an order
type FulfillmentStatus string

const (
	FulfillmentStatusFulfilled          FulfillmentStatus = "FULFILLED"
	FulfillmentStatusInProgress         FulfillmentStatus = "IN_PROGRESS"
	FulfillmentStatusOnHold             FulfillmentStatus = "ON_HOLD"
	FulfillmentStatusOpen               FulfillmentStatus = "OPEN"
	FulfillmentStatusPartiallyFulfilled FulfillmentStatus = "PARTIALLY_FULFILLED"
	FulfillmentStatusPendingFulfillment FulfillmentStatus = "PENDING_FULFILLMENT"
	FulfillmentStatusRestocked          FulfillmentStatus = "RESTOCKED"
	FulfillmentStatusScheduled          FulfillmentStatus = "SCHEDULED"
	FulfillmentStatusUnfulfilled        FulfillmentStatus = "UNFULFILLED"
)

// Badge describes how a fulfillment status is rendered in the admin
type Badge struct {
	Progress string `json:"progress"`
	Tone     string `json:"tone"`
	Label    string `json:"label"`
}

// IsValid checks if the fulfillment status is one of the known values
func (s FulfillmentStatus) IsValid() bool {
	switch s {
	case FulfillmentStatusFulfilled,
		FulfillmentStatusInProgress,
		FulfillmentStatusOnHold,
		FulfillmentStatusOpen,
		FulfillmentStatusPartiallyFulfilled,
		FulfillmentStatusPendingFulfillment,
		FulfillmentStatusRestocked,
		FulfillmentStatusScheduled,
		FulfillmentStatusUnfulfilled:
		return true
	default:
		return false
	}
}

// Badge returns the badge for the status. Unknown values render as UNFULFILLED.
func (s FulfillmentStatus) Badge() Badge {
	switch s {
	case FulfillmentStatusFulfilled:
		return Badge{Progress: "complete", Tone: "success", Label: "Fulfilled"}
	case FulfillmentStatusInProgress:
		return Badge{Progress: "partiallyComplete", Tone: "attention", Label: "In Progress"}
	case FulfillmentStatusOnHold:
		return Badge{Progress: "incomplete", Tone: "warning", Label: "On Hold"}
	case FulfillmentStatusOpen:
		return Badge{Progress: "incomplete", Tone: "attention", Label: "Open"}
	case FulfillmentStatusPartiallyFulfilled:
		return Badge{Progress: "partiallyComplete", Tone: "warning", Label: "Partially Fulfilled"}
	case FulfillmentStatusPendingFulfillment:
		return Badge{Progress: "incomplete", Tone: "attention", Label: "Pending Fulfillment"}
	case FulfillmentStatusRestocked:
		return Badge{Progress: "incomplete", Tone: "default", Label: "Restocked"}
	case FulfillmentStatusScheduled:
		return Badge{Progress: "incomplete", Tone: "info", Label: "Scheduled"}
	default:
		return Badge{Progress: "incomplete", Tone: "attention", Label: "Unfulfilled"}
	}
}
