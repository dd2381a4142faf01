// Package receipt turns noisy OCR-extracted receipt text into structured,
// validated data with a confidence score.
//
// The pipeline is a fixed sequence of independent field extractors, each
// tolerant of a different family of OCR corruption, followed by per-field
// validators and a cross check of the item sum against the stated total.
// Every extraction failure is reported as an absent field plus a failing
// ValidationResult; processing never returns an error.
package receipt

import (
	"encoding/json"
	"strconv"
)

// ProcessedResult is the full outcome of processing one receipt text.
type ProcessedResult struct {
	Data        Data               `json:"data"`
	Confidence  float64            `json:"confidence"`
	Validations []ValidationResult `json:"validations"`
}

// ValidationResult records the outcome of evaluating one field.
type ValidationResult struct {
	Field   string `json:"field"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Data holds the structured fields recovered from a receipt. Every field is
// optional; absent fields are omitted from the JSON encoding rather than
// emitted as null.
type Data struct {
	Establishment      string          `json:"establishment,omitempty"`
	TaxID              string          `json:"taxId,omitempty"`
	Date               string          `json:"date,omitempty"` // YYYY-MM-DD
	Time               string          `json:"time,omitempty"` // HH:MM
	Items              []LineItem      `json:"items,omitempty"`
	TotalValue         *float64        `json:"totalValue,omitempty"`
	TotalIsApproximate bool            `json:"totalIsApproximate,omitempty"`
	PaymentMethod      string          `json:"paymentMethod,omitempty"`
	AdditionalInfo     *AdditionalInfo `json:"additionalInfo,omitempty"`
}

// LineItem is one purchased product or service entry.
type LineItem struct {
	Description       string   `json:"description"`
	Quantity          Quantity `json:"quantity"`
	UnitPrice         float64  `json:"unitPrice,omitempty"`
	TotalPrice        float64  `json:"totalPrice"`
	CorrectionApplied bool     `json:"correctionApplied,omitempty"`
}

// Quantity is either a plain count or a unit-suffixed label such as "2k" or
// "1un" when the receipt carries a weight or count marker instead of a bare
// number. It marshals as a JSON number or string accordingly.
type Quantity struct {
	Count int
	Label string
}

// Count returns a numeric Quantity.
func Count(n int) Quantity { return Quantity{Count: n} }

// Label returns a unit-suffixed Quantity.
func Label(s string) Quantity { return Quantity{Label: s} }

// String renders the quantity the way it appeared on the receipt.
func (q Quantity) String() string {
	if q.Label != "" {
		return q.Label
	}
	return strconv.Itoa(q.Count)
}

// MarshalJSON encodes a count as a number and a label as a string.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.Label != "" {
		return json.Marshal(q.Label)
	}
	return json.Marshal(q.Count)
}

// UnmarshalJSON accepts either encoding.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*q = Quantity{Count: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*q = Quantity{Label: s}
	return nil
}

// AdditionalInfo carries ancillary fields that only some receipt kinds have.
type AdditionalInfo struct {
	ServiceTax   *ServiceTax `json:"serviceTax,omitempty"`
	Change       *float64    `json:"change,omitempty"`
	TableNumber  string      `json:"tableNumber,omitempty"`
	FuelVolume   *float64    `json:"fuelVolume,omitempty"`
	PricePerUnit *float64    `json:"pricePerUnit,omitempty"`
}

func (a AdditionalInfo) empty() bool {
	return a.ServiceTax == nil && a.Change == nil && a.TableNumber == "" &&
		a.FuelVolume == nil && a.PricePerUnit == nil
}

func (a AdditionalInfo) fieldCount() int {
	n := 0
	if a.ServiceTax != nil {
		n++
	}
	if a.Change != nil {
		n++
	}
	if a.TableNumber != "" {
		n++
	}
	if a.FuelVolume != nil {
		n++
	}
	if a.PricePerUnit != nil {
		n++
	}
	return n
}

// ServiceTax is a percentage-based service charge with its absolute amount.
type ServiceTax struct {
	Percentage int     `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// Field names used in ValidationResult entries. They match the keys of the
// JSON encoding of Data, plus the derived "consistency" check.
const (
	FieldEstablishment  = "establishment"
	FieldTaxID          = "taxId"
	FieldDate           = "date"
	FieldTime           = "time"
	FieldItems          = "items"
	FieldTotalValue     = "totalValue"
	FieldConsistency    = "consistency"
	FieldPaymentMethod  = "paymentMethod"
	FieldAdditionalInfo = "additionalInfo"
)
