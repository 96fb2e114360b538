package main

import (
	"github.com/shopspring/decimal"
)

const (
	AddProductLabel    = "Add Product"
	UpdateProductLabel = "Update Product"
	SuccessBanner      = "Payment was successful!"
)

// ProductRow é uma linha da lista de produtos
type ProductRow struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CartRow é uma linha do carrinho, identificada pela posição
type CartRow struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
}

// ScreenView é a projeção do State que a camada de apresentação renderiza
type ScreenView struct {
	Form          Form         `json:"form"`
	Mode          Mode         `json:"mode"`
	EditingID     string       `json:"editing_id,omitempty"`
	PrimaryButton string       `json:"primary_button"`
	Products      []ProductRow `json:"products"`
	Cart          []CartRow    `json:"cart"`
	Total         string       `json:"total"`
	Banner        string       `json:"banner,omitempty"`
}

func FormatPrice(price decimal.Decimal) string {
	return "$" + price.StringFixed(2)
}

func FormatProductLine(p Product) string {
	return p.Name + " - " + FormatPrice(p.Price)
}

func FormatTotal(total decimal.Decimal) string {
	return "Total: " + FormatPrice(total)
}

// NewScreenView monta a visão da tela a partir do estado
func NewScreenView(s State) ScreenView {
	view := ScreenView{
		Form:          s.Form,
		Mode:          s.Mode(),
		PrimaryButton: AddProductLabel,
		Products:      make([]ProductRow, 0, len(s.Catalog)),
		Cart:          make([]CartRow, 0, len(s.Cart)),
		Total:         FormatTotal(s.Total()),
	}

	if s.Editing != nil {
		view.EditingID = s.Editing.ProductID
		view.PrimaryButton = UpdateProductLabel
	}

	for _, p := range s.Catalog {
		view.Products = append(view.Products, ProductRow{ID: p.ID, Label: FormatProductLine(p)})
	}
	for i, p := range s.Cart {
		view.Cart = append(view.Cart, CartRow{Position: i, Label: FormatProductLine(p)})
	}

	if s.PaymentSucceeded {
		view.Banner = SuccessBanner
	}

	return view
}
