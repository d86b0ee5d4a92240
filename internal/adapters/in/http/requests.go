package http

import (
	"strings"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/quote"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type RegisterRequest struct {
	Email    openapi_types.Email `json:"email"`
	Username string              `json:"username"`
	Password string              `json:"password"`
	FullName string              `json:"full_name"`
	Phone    string              `json:"phone"`
}

// TokenRequest accepts the login under any of its names.
type TokenRequest struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r TokenRequest) login() string {
	for _, s := range []string{r.Login, r.Username, r.Email} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type PostalRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (r PostalRequest) toDomain() (kernel.PostalAddress, error) {
	return kernel.NewPostalAddress(r.Line1, r.Line2, r.City, r.State, r.PostalCode, r.Country)
}

type AddressRequest struct {
	Label       string        `json:"label"`
	ContactName string        `json:"contact_name"`
	Phone       string        `json:"phone"`
	Address     PostalRequest `json:"address"`
	IsDefault   bool          `json:"is_default"`
}

type EndpointRequest struct {
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

func (r EndpointRequest) toDomain() (quote.Endpoint, error) {
	return quote.NewEndpoint(r.Country, r.PostalCode)
}

type ParcelRequest struct {
	WeightGrams int `json:"weight_grams"`
	LengthCm    int `json:"length_cm"`
	WidthCm     int `json:"width_cm"`
	HeightCm    int `json:"height_cm"`
}

func (r ParcelRequest) toDomain() (shipment.Parcel, error) {
	return shipment.NewParcel(r.WeightGrams, r.LengthCm, r.WidthCm, r.HeightCm)
}

// QuoteRequest carries money as decimal strings ("12.50") in the service currency.
type QuoteRequest struct {
	Origin        EndpointRequest `json:"origin"`
	Destination   EndpointRequest `json:"destination"`
	Parcel        ParcelRequest   `json:"parcel"`
	ServiceLevel  string          `json:"service_level"`
	DeclaredValue string          `json:"declared_value"`
}

type PartyRequest struct {
	Name    string        `json:"name"`
	Phone   string        `json:"phone"`
	Address PostalRequest `json:"address"`
}

func (r PartyRequest) toDomain(role string) (shipment.Party, error) {
	postal, err := r.Address.toDomain()
	if err != nil {
		return shipment.Party{}, errs.NewValueIsInvalidErrorWithCause(role+" address", err)
	}
	return shipment.NewParty(r.Name, r.Phone, postal)
}

type ShipmentRequest struct {
	Sender        PartyRequest  `json:"sender"`
	Recipient     PartyRequest  `json:"recipient"`
	Parcel        ParcelRequest `json:"parcel"`
	ServiceLevel  string        `json:"service_level"`
	DeclaredValue string        `json:"declared_value"`
	Description   string        `json:"description"`
}

type ShipmentStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Note     string `json:"note"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type BillRequest struct {
	OwnerID     openapi_types.UUID  `json:"owner_id"`
	ShipmentID  *openapi_types.UUID `json:"shipment_id"`
	Description string              `json:"description"`
	Amount      string              `json:"amount"`
	DueDate     openapi_types.Date  `json:"due_date"`
}

type InvoiceLineRequest struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type InvoiceRequest struct {
	OwnerID   openapi_types.UUID   `json:"owner_id"`
	IssueDate openapi_types.Date   `json:"issue_date"`
	DueDate   openapi_types.Date   `json:"due_date"`
	TaxRateBP int                  `json:"tax_rate_bp"`
	Notes     string               `json:"notes"`
	Lines     []InvoiceLineRequest `json:"lines"`
}

// PickupRequestBody copies the pickup address from an address-book entry.
type PickupRequestBody struct {
	AddressID        openapi_types.UUID  `json:"address_id"`
	ShipmentID       *openapi_types.UUID `json:"shipment_id"`
	PickupDate       openapi_types.Date  `json:"pickup_date"`
	TimeWindow       string              `json:"time_window"`
	PackageCount     int                 `json:"package_count"`
	TotalWeightGrams int                 `json:"total_weight_grams"`
	Instructions     string              `json:"instructions"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type SupportRequestBody struct {
	ShipmentID  *openapi_types.UUID `json:"shipment_id"`
	Subject     string              `json:"subject"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Priority    string              `json:"priority"`
	Tags        []string            `json:"tags"`
}

type AssignRequest struct {
	AssigneeID openapi_types.UUID `json:"assignee_id"`
}

// optionalUUID converts an optional wire id; the nil UUID counts as absent.
func optionalUUID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil || *id == (openapi_types.UUID{}) {
		return nil, nil
	}
	k, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
