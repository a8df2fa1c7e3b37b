package elms

// Currency identifies the order currency on the wire.
type Currency int

const (
	CurrencyCZK Currency = 1
	CurrencyEUR Currency = 2
)

// Supported destination countries.
const (
	CountryCZ = "CZ"
	CountrySK = "SK"
)

// Synthetic PLUs the fulfillment service treats specially.
const (
	PLUDiscount = "discount"
	PLURounding = "rounding"
)

// Carrier codes recognized as a delivery line item.
const (
	DeliveryCPost            = "cpost"   // Czech Post parcel
	DeliveryCPostRR          = "cpostrr" // Czech Post registered letter
	DeliverySPost            = "spost"   // Slovak Post
	DeliveryGLSCZ            = "glscz"
	DeliveryGLSSK            = "glssk"
	DeliveryDPD              = "dpd"
	DeliveryDPDNoCard        = "dpdnocard"
	DeliveryDPDPrivate       = "dpdprivate"
	DeliveryDPDPrivateNoCard = "dpdprivatenocard"
	DeliveryPersonal         = "osobni_odber_elms" // warehouse pickup
)

// DefaultDeliveryCodes returns the carrier allow-list used when
// configuration does not supply its own.
func DefaultDeliveryCodes() []string {
	return []string{
		DeliveryCPost,
		DeliveryCPostRR,
		DeliverySPost,
		DeliveryGLSCZ,
		DeliveryGLSSK,
		DeliveryDPD,
		DeliveryDPDNoCard,
		DeliveryDPDPrivate,
		DeliveryDPDPrivateNoCard,
		DeliveryPersonal,
	}
}
