package invoice

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veermani/kitchen-backend/pkg/config"
	"github.com/veermani/kitchen-backend/pkg/db/models"
	"github.com/veermani/kitchen-backend/pkg/enums"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
	"github.com/veermani/kitchen-backend/pkg/types"
)

const (
	countryCode     = "91"
	placeholderLine = "- (no item details available)"
	header          = "श्री तिलकेश्वर पार्श्वनाथ नमः"
)

// Details carries everything the invoice message needs. Items may be a
// typed snapshot, raw JSON, or a JSON string; malformed payloads degrade to
// a placeholder line instead of failing the message.
type Details struct {
	Phone               string
	OrderNumber         string
	CustomerName        string
	Items               any
	TotalAmount         decimal.Decimal
	CreatedAt           *time.Time
	FulfillmentType     *enums.FulfillmentType
	PickupDate          *string
	PickupTime          *string
	CustomPacking       bool
	SpecialInstructions *string
}

// Formatter builds WhatsApp invoice links. Pure; it never persists anything
// and the caller is responsible for opening the returned URL.
type Formatter struct {
	storeName     string
	contactPhones []string
}

// NewFormatter builds a formatter from the store configuration.
func NewFormatter(cfg config.StoreConfig) *Formatter {
	return &Formatter{
		storeName:     cfg.Name,
		contactPhones: cfg.InvoicePhoneList(),
	}
}

// NormalizePhone strips every non-digit character. It fails when fewer than
// ten digits remain.
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()
	if len(cleaned) < 10 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid phone number for whatsapp")
	}
	return cleaned, nil
}

// BuildLink renders the invoice message and wraps it in a wa.me URL. The
// country code is applied to the last ten digits so numbers that already
// carry 91 are not doubled up.
func (f *Formatter) BuildLink(details Details) (string, error) {
	cleaned, err := NormalizePhone(details.Phone)
	if err != nil {
		return "", err
	}
	local := cleaned[len(cleaned)-10:]
	message := f.Message(details)
	return fmt.Sprintf("https://wa.me/%s%s?text=%s", countryCode, local, url.QueryEscape(message)), nil
}

// BuildForOrder is a convenience wrapper over BuildLink for persisted orders.
func (f *Formatter) BuildForOrder(order *models.Order) (string, error) {
	createdAt := order.CreatedAt
	fulfillment := order.FulfillmentType
	return f.BuildLink(Details{
		Phone:               order.CustomerPhone,
		OrderNumber:         order.OrderNumber,
		CustomerName:        order.CustomerName,
		Items:               order.Items,
		TotalAmount:         order.TotalAmount,
		CreatedAt:           &createdAt,
		FulfillmentType:     &fulfillment,
		PickupDate:          order.PickupDate,
		PickupTime:          order.PickupTime,
		CustomPacking:       order.CustomPacking,
		SpecialInstructions: order.SpecialInstructions,
	})
}

// Message renders the plain-text invoice body.
func (f *Formatter) Message(details Details) string {
	customer := details.CustomerName
	if customer == "" {
		customer = "Customer"
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n====================\n")
	b.WriteString(f.storeName)
	b.WriteString("\nOrder Confirmation\n====================\n\n")
	fmt.Fprintf(&b, "Dear %s,\n\n", customer)
	b.WriteString("Thank you for your order. Here are the details:\n\n")
	fmt.Fprintf(&b, "Order Number: %s\n", details.OrderNumber)
	if details.CreatedAt != nil {
		fmt.Fprintf(&b, "Order Date: %s\n", details.CreatedAt.Format("02 Jan 2006, 3:04 PM"))
	}
	fmt.Fprintf(&b, "\nTotal Amount: ₹%s\n\n", details.TotalAmount.StringFixed(2))
	b.WriteString("--- Items ---\n")
	b.WriteString(itemLines(details.Items))

	if section := fulfillmentSection(details); section != "" {
		b.WriteString("\n\n")
		b.WriteString(section)
	}
	if details.SpecialInstructions != nil && *details.SpecialInstructions != "" {
		b.WriteString("\n\n--- Special Instructions ---\n")
		b.WriteString(*details.SpecialInstructions)
	}

	b.WriteString("\n\nPayment has been collected in-store via Cash or UPI.\n\n")
	b.WriteString("For any questions, please contact us at:\n")
	b.WriteString(strings.Join(f.contactPhones, " or "))
	b.WriteString("\n\nThank you for your business!")
	return b.String()
}

func fulfillmentSection(details Details) string {
	hasType := details.FulfillmentType != nil && details.FulfillmentType.IsValid()
	hasPickup := (details.PickupDate != nil && *details.PickupDate != "") ||
		(details.PickupTime != nil && *details.PickupTime != "")
	if !hasType && !hasPickup && !details.CustomPacking {
		return ""
	}

	var lines []string
	if hasType {
		lines = append(lines, "Method: "+strings.ReplaceAll(string(*details.FulfillmentType), "_", " "))
	}
	if hasPickup {
		var parts []string
		if details.PickupDate != nil && *details.PickupDate != "" {
			parts = append(parts, *details.PickupDate)
		}
		if details.PickupTime != nil && *details.PickupTime != "" {
			parts = append(parts, *details.PickupTime)
		}
		lines = append(lines, "Pickup Time: "+strings.Join(parts, " "))
	}
	if details.CustomPacking {
		lines = append(lines, "Custom Packing: Yes")
	}
	return "--- Fulfillment Details ---\n" + strings.Join(lines, "\n")
}

// itemPayload tolerates the alternate key spellings older snapshots used.
type itemPayload struct {
	ProductName *string          `json:"product_name"`
	Name        *string          `json:"name"`
	QuantityKg  *decimal.Decimal `json:"quantity_kg"`
	Qty         *decimal.Decimal `json:"qty"`
	PricePerKg  *decimal.Decimal `json:"price_per_kg"`
	Price       *decimal.Decimal `json:"price"`
	Subtotal    *decimal.Decimal `json:"subtotal"`
	Total       *decimal.Decimal `json:"total"`
}

func itemLines(raw any) string {
	items := normalizeItems(raw)
	if len(items) == 0 {
		return placeholderLine
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s: %skg @ ₹%s/kg = ₹%s",
			item.Name, item.QuantityKg.String(), item.PricePerKg.String(), item.Subtotal.StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}

func normalizeItems(raw any) types.OrderItems {
	switch v := raw.(type) {
	case nil:
		return nil
	case types.OrderItems:
		return v
	case []types.OrderItem:
		return v
	case json.RawMessage:
		return parseItems([]byte(v))
	case []byte:
		return parseItems(v)
	case string:
		return parseItems([]byte(v))
	default:
		return nil
	}
}

func parseItems(data []byte) types.OrderItems {
	var payloads []itemPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil
	}
	items := make(types.OrderItems, 0, len(payloads))
	for _, p := range payloads {
		item := types.OrderItem{Name: "Item"}
		if p.ProductName != nil {
			item.Name = *p.ProductName
		} else if p.Name != nil {
			item.Name = *p.Name
		}
		if p.QuantityKg != nil {
			item.QuantityKg = *p.QuantityKg
		} else if p.Qty != nil {
			item.QuantityKg = *p.Qty
		}
		if p.PricePerKg != nil {
			item.PricePerKg = *p.PricePerKg
		} else if p.Price != nil {
			item.PricePerKg = *p.Price
		}
		switch {
		case p.Subtotal != nil:
			item.Subtotal = *p.Subtotal
		case p.Total != nil:
			item.Subtotal = *p.Total
		default:
			item.Subtotal = item.PricePerKg.Mul(item.QuantityKg)
		}
		items = append(items, item)
	}
	return items
}
