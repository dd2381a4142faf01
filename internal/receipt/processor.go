package receipt

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"receiptscan/internal/logger"
)

// sumTolerance is the maximum absolute difference, in currency units,
// accepted between the item sum and the stated total.
const sumTolerance = 0.10

// Processor runs the extraction-and-validation pipeline.
type Processor struct {
	log zerolog.Logger
}

// NewProcessor creates a new receipt processor.
func NewProcessor() *Processor {
	return &Processor{
		log: logger.WithComponent("receipt-processor"),
	}
}

// Process extracts structured data from one receipt's OCR text, validates
// the fields against each other and returns the data together with a
// confidence score and the ordered validation outcomes.
//
// Process is total and deterministic: any input, including an empty string,
// yields a ProcessedResult, and identical input always yields an identical
// result. Absent fields are omitted from Data rather than set to a zero
// marker. Logging is the only side effect and never influences the result.
func (p *Processor) Process(text string) ProcessedResult {
	var validations []ValidationResult
	score := newScorer()
	var data Data

	if establishment := extractEstablishment(text); establishment != "" {
		data.Establishment = establishment
		validations = append(validations, ValidationResult{
			Field:   FieldEstablishment,
			Success: true,
			Message: fmt.Sprintf("establishment identified: %q", establishment),
		})
	} else {
		validations = append(validations, ValidationResult{
			Field:   FieldEstablishment,
			Success: false,
			Message: "establishment not identified",
		})
		score.penalize(PenaltyEstablishmentMissing)
	}

	taxID := extractTaxID(text)
	switch {
	case taxID.Valid:
		data.TaxID = taxID.Formatted
		validations = append(validations, ValidationResult{
			Field:   FieldTaxID,
			Success: true,
			Message: "valid tax ID: " + taxID.Formatted,
		})
	case taxID.Digits != "":
		// A degenerate 14-digit run is still formatted and reported in the
		// data; only its validity fails. Formatted is empty otherwise.
		data.TaxID = taxID.Formatted
		validations = append(validations, ValidationResult{
			Field:   FieldTaxID,
			Success: false,
			Message: "tax ID found but format is invalid: " + taxID.Digits,
		})
		score.penalize(PenaltyTaxIDInvalid)
	default:
		validations = append(validations, ValidationResult{
			Field:   FieldTaxID,
			Success: false,
			Message: "tax ID not found",
		})
		score.penalize(PenaltyTaxIDMissing)
	}

	date := extractDate(text)
	if date.Canonical != "" {
		data.Date = date.Canonical
		message := "date extracted: " + date.Display
		if date.Corrected {
			message += " (with corrections)"
			score.penalize(PenaltyDateCorrected)
		}
		validations = append(validations, ValidationResult{
			Field:   FieldDate,
			Success: true,
			Message: message,
		})
	} else {
		validations = append(validations, ValidationResult{
			Field:   FieldDate,
			Success: false,
			Message: "date not found",
		})
		score.penalize(PenaltyDateMissing)
	}

	if extracted := extractTime(text); extracted != "" {
		data.Time = extracted
		validations = append(validations, ValidationResult{
			Field:   FieldTime,
			Success: true,
			Message: "time extracted: " + extracted,
		})
	}

	items := extractItems(text)
	if len(items) > 0 {
		data.Items = items
		validations = append(validations, ValidationResult{
			Field:   FieldItems,
			Success: true,
			Message: fmt.Sprintf("%d item(s) extracted", len(items)),
		})

		corrected := 0
		for _, item := range items {
			if item.CorrectionApplied {
				corrected++
			}
		}
		if corrected > 0 {
			score.penalize(PenaltyItemCorrected * float64(corrected))
			validations = append(validations, ValidationResult{
				Field:   FieldItems,
				Success: true,
				Message: fmt.Sprintf("%d item(s) needed OCR correction", corrected),
			})
		}
	}

	total := extractTotalValue(text)
	if total.Value != nil {
		data.TotalValue = total.Value
		data.TotalIsApproximate = total.Approximate
		message := fmt.Sprintf("total value: R$ %.2f", *total.Value)
		if total.Approximate {
			message += " (approximate)"
			score.penalize(PenaltyTotalApproximate)
		}
		validations = append(validations, ValidationResult{
			Field:   FieldTotalValue,
			Success: true,
			Message: message,
		})
	} else {
		validations = append(validations, ValidationResult{
			Field:   FieldTotalValue,
			Success: false,
			Message: "total value not found",
		})
		score.penalize(PenaltyTotalMissing)
	}

	// Cross check: item sum vs. stated total. Runs only when both sides
	// were extracted.
	if len(items) > 0 && total.Value != nil {
		itemsSum := 0.0
		for _, item := range items {
			itemsSum += item.TotalPrice
		}
		if math.Abs(itemsSum-*total.Value) < sumTolerance {
			validations = append(validations, ValidationResult{
				Field:   FieldConsistency,
				Success: true,
				Message: "item sum matches the stated total",
			})
		} else {
			validations = append(validations, ValidationResult{
				Field:   FieldConsistency,
				Success: false,
				Message: fmt.Sprintf("sum mismatch: items R$ %.2f vs total R$ %.2f", itemsSum, *total.Value),
			})
			score.penalize(PenaltyInconsistentSum)
		}
	}

	if payment := extractPaymentMethod(text); payment != "" {
		data.PaymentMethod = payment
		validations = append(validations, ValidationResult{
			Field:   FieldPaymentMethod,
			Success: true,
			Message: "payment method: " + payment,
		})
	}

	if info := extractAdditionalInfo(text); !info.empty() {
		data.AdditionalInfo = &info
		validations = append(validations, ValidationResult{
			Field:   FieldAdditionalInfo,
			Success: true,
			Message: fmt.Sprintf("%d additional field(s) detected", info.fieldCount()),
		})
	}

	confidence := score.final()

	failures := 0
	for _, v := range validations {
		if !v.Success {
			failures++
		}
	}
	p.log.Debug().
		Int("validations", len(validations)).
		Int("failures", failures).
		Int("items", len(items)).
		Float64("confidence", confidence).
		Msg("Receipt text processed")

	return ProcessedResult{
		Data:        data,
		Confidence:  confidence,
		Validations: validations,
	}
}
