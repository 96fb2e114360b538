package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Os mesmos fixtures são conferidos contra o router real em
// services/storefront/contract_test.go.
func decodeFixture(t *testing.T, name string, out any) {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestContract_ScreenView(t *testing.T) {
	var view ScreenView

	decodeFixture(t, "screen_editing.json", &view)

	assert.Equal(t, ScreenView{
		Form:          Form{Name: "Pen", Price: "1.5"},
		Mode:          "edit",
		EditingID:     "<id>",
		PrimaryButton: "Update Product",
		Products:      []ProductRow{{ID: "<id>", Label: "Pen - $1.50"}},
		Cart:          []CartRow{{Position: 0, Label: "Pen - $1.50"}},
		Total:         "Total: $1.50",
		Banner:        "Payment was successful!",
	}, view)
}

func TestContract_PaymentResponse(t *testing.T) {
	var resp PaymentResponse

	decodeFixture(t, "payment_response.json", &resp)

	assert.Equal(t, PaymentNotice{Success: true, Message: "Payment successful! Thank you for your purchase."}, resp.Notice)
	assert.Equal(t, "add", resp.Screen.Mode)
	assert.Equal(t, "Add Product", resp.Screen.PrimaryButton)
	assert.Equal(t, []ProductRow{{ID: "<id>", Label: "Pen - $1.50"}}, resp.Screen.Products)
	assert.Empty(t, resp.Screen.Cart)
	assert.Equal(t, "Total: $0.00", resp.Screen.Total)
	assert.Equal(t, "Payment was successful!", resp.Screen.Banner)
}
