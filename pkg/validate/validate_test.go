package validate_test

import (
	"testing"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/validate"
)

type productInput struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"required,gte=0"`
	Quantity    int     `json:"quantity"    validate:"integer,gte=0"`
	Status      string  `json:"status"      validate:"nullable,in=Not Process,Processing,Shipped,Delivered,Canceled"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Name:        "Basmati Rice 5kg",
		Description: "Long-grain aromatic rice",
		Price:       24.5,
		Quantity:    120,
		Status:      "Processing",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["description"]; !ok {
		t.Error("expected description to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=0,lte=100000"`
	}
	if errs := validate.Struct(in{Quantity: -3}); !validate.HasErrors(errs) {
		t.Error("expected negative quantity to fail")
	}
	if errs := validate.Struct(in{Quantity: 25}); validate.HasErrors(errs) {
		t.Errorf("expected quantity 25 to pass, got: %v", errs)
	}
}

func TestInRuleKeepsCommaValues(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=Not Process,Processing,Shipped,Delivered,Canceled"`
	}
	if errs := validate.Struct(in{Status: "Returned"}); !validate.HasErrors(errs) {
		t.Error("expected unknown status to fail")
	}
	if errs := validate.Struct(in{Status: "Not Process"}); validate.HasErrors(errs) {
		t.Errorf("expected 'Not Process' to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"nullable,min=7"`
	}
	// Empty string is nullable, so the remaining rules are skipped.
	if errs := validate.Struct(in{Phone: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Phone: "123"}); !validate.HasErrors(errs) {
		t.Error("expected short phone to fail")
	}
}

func TestStringLengthBounds(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=5"`
	}
	if errs := validate.Struct(in{Name: "a"}); !validate.HasErrors(errs) {
		t.Error("expected one-char name to fail min")
	}
	if errs := validate.Struct(in{Name: "toolongname"}); !validate.HasErrors(errs) {
		t.Error("expected long name to fail max")
	}
	if errs := validate.Struct(in{Name: "okay"}); validate.HasErrors(errs) {
		t.Errorf("expected 'okay' to pass: %v", errs)
	}
}
