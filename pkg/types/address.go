package types

// Address is the denormalized shipping/billing address snapshot stamped onto
// orders at checkout.
type Address struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}
