package enum

// ── Order statuses (flat wire domain; the UI folds the cancellation
// family into a single "cancelled" display state) ──

const (
	StatusNew       = "new"
	StatusNewPaid   = "new_paid"
	StatusReserve   = "reserve"
	StatusTransfer  = "transfer"
	StatusDelivery  = "delivery"
	StatusCallback  = "callback"
	StatusCompleted = "completed"
)

const (
	StatusRefund            = "refund"
	StatusCancelled         = "cancelled"
	StatusCancelNoAnswer    = "cancel_no_answer"
	StatusCancelNotSuitYear = "cancel_not_suitable_year"
	StatusCancelWrongOrder  = "cancel_wrong_order"
	StatusCancelFoundOther  = "cancel_found_other"
	StatusCancelDelivTerms  = "cancel_delivery_terms"
	StatusCancelNoQuantity  = "cancel_no_quantity"
	StatusCancelIncomplete  = "cancel_incomplete"
)

// ── Order sources ──

const (
	SourceCallCenter = "callcentr"
	Source2GIS       = "2gis"
	SourceEmail      = "email"
	SourceInstagram  = "instagram"
	SourceKaspi      = "kaspi"
	SourceWhatsApp   = "whatsapp"
	SourceWebsite    = "website"
)

// ── Payment methods ──

const (
	PaymentAirba       = "airba"
	PaymentHalyk       = "halyk"
	PaymentKaspi       = "kaspi"
	PaymentWoopay      = "woopay"
	PaymentBCC         = "bcc"
	PaymentCassa       = "cassa"
	PaymentAccount     = "account"
	PaymentInstallment = "installment"
	PaymentSite        = "site"
	PaymentCard        = "card"
	PaymentTransfer    = "transfer"
	PaymentCash        = "cash"
)

// ── Delivery methods ──

const (
	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"
	DeliveryCourier  = "courier"
)

// ── Price levels ──

const (
	PriceLevelWholesale   = "wholesale"
	PriceLevelPromotional = "promotional"
	PriceLevelRetail      = "retail"
)

// ── Client types ──

const (
	ClientIndividual  = "individual"
	ClientLegalEntity = "legal_entity"
)
