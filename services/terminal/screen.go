package main

import (
	"fmt"
	"io"
)

// Render escreve a tela em texto
func Render(w io.Writer, view ScreenView) {
	fmt.Fprintln(w, "Product Management")
	fmt.Fprintf(w, "  Product Name: %s\n", view.Form.Name)
	fmt.Fprintf(w, "  Price:        %s\n", view.Form.Price)
	fmt.Fprintf(w, "  [%s]\n", view.PrimaryButton)
	fmt.Fprintln(w)

	if len(view.Products) == 0 {
		fmt.Fprintln(w, "  (no products)")
	}
	for i, p := range view.Products {
		marker := " "
		if p.ID == view.EditingID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s #%d %s   [Edit] [Delete] [Add to Cart]\n", marker, i+1, p.Label)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cart")
	if len(view.Cart) == 0 {
		fmt.Fprintln(w, "  (empty)")
	}
	for _, item := range view.Cart {
		fmt.Fprintf(w, "  %s\n", item.Label)
	}
	fmt.Fprintln(w, view.Total)
	fmt.Fprintln(w, "[Process Payment]")

	if view.Banner != "" {
		fmt.Fprintln(w, view.Banner)
	}
}

// RenderNotice escreve um aviso modal
func RenderNotice(w io.Writer, notice PaymentNotice) {
	fmt.Fprintf(w, "ALERT: %s\n", notice.Message)
}
