package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/errs"
	"github.com/GregMSThompson/receipts-backend/internal/models"
)

const dateOnly = "2006-01-02"

// receiptSchema describes the body of POST and PUT /receipts. An id is
// tolerated so clients can send back what they read, but it is never used.
const receiptSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["sum", "date", "expenseType"],
	"properties": {
		"id": {"type": "string"},
		"sum": {"type": "number"},
		"date": {
			"type": "string",
			"anyOf": [{"format": "date-time"}, {"format": "date"}]
		},
		"description": {"type": "string"},
		"expenseType": {"enum": %s},
		"location": {"type": "string"}
	}
}`

var receiptBodySchema = mustCompileReceiptSchema()

func mustCompileReceiptSchema() *jsonschema.Schema {
	names := make([]string, 0, len(models.ExpenseTypes))
	for _, t := range models.ExpenseTypes {
		names = append(names, t.String())
	}
	enum, _ := json.Marshal(names)

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("receipt.json", strings.NewReader(fmt.Sprintf(receiptSchema, enum))); err != nil {
		panic(fmt.Sprintf("add receipt schema: %v", err))
	}
	return compiler.MustCompile("receipt.json")
}

type receiptBody struct {
	Sum         float64            `json:"sum"`
	Date        string             `json:"date"`
	Description string             `json:"description"`
	ExpenseType models.ExpenseType `json:"expenseType"`
	Location    string             `json:"location"`
}

// decodeReceiptInput validates raw against the receipt schema and converts it
// into a service input.
func decodeReceiptInput(raw []byte) (dto.ReceiptInput, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return dto.ReceiptInput{}, errs.NewValidationError("request body is not valid JSON")
	}
	if err := receiptBodySchema.Validate(doc); err != nil {
		return dto.ReceiptInput{}, errs.NewValidationError(schemaMessage(err))
	}

	var body receiptBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return dto.ReceiptInput{}, errs.NewValidationError(err.Error())
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return dto.ReceiptInput{}, errs.NewValidationError(fmt.Sprintf("date: %v", err))
	}

	return dto.ReceiptInput{
		Sum:         body.Sum,
		Date:        date,
		Description: body.Description,
		ExpenseType: body.ExpenseType,
		Location:    body.Location,
	}, nil
}

// parseDate accepts RFC 3339 or a bare YYYY-MM-DD, read as midnight UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither RFC 3339 nor YYYY-MM-DD", s)
	}
	return t, nil
}

func schemaMessage(err error) string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	// the deepest cause names the offending field
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	loc := verr.InstanceLocation
	if loc == "" {
		loc = "body"
	}
	return fmt.Sprintf("%s: %s", loc, verr.Message)
}
