package errors_test

import (
	"fmt"

	"github.com/agentstation/storefront/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := &errors.NotFoundError{
		Resource: "product",
		ID:       "13",
	}

	if errors.IsNotFound(err) {
		fmt.Println("Product not found")
	}

	// Output: Product not found
}

// Example_validationError shows how edges reject out-of-range quantities.
func Example_validationError() {
	qty := 12
	err := errors.NewValidationError("qty", qty, "must be between 1 and 10")

	if errors.IsValidationError(err) {
		fmt.Println(err)
	}

	// Output: validation failed for field qty: must be between 1 and 10
}
