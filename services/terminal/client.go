package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-resty/resty/v2"
)

// Form espelha os campos de texto da tela
type Form struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ProductRow é uma linha da lista de produtos
type ProductRow struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CartRow é uma linha do carrinho
type CartRow struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
}

// ScreenView é a visão da tela devolvida pelo storefront-service
type ScreenView struct {
	Form          Form         `json:"form"`
	Mode          string       `json:"mode"`
	EditingID     string       `json:"editing_id,omitempty"`
	PrimaryButton string       `json:"primary_button"`
	Products      []ProductRow `json:"products"`
	Cart          []CartRow    `json:"cart"`
	Total         string       `json:"total"`
	Banner        string       `json:"banner,omitempty"`
}

// PaymentNotice é o aviso exibido após uma tentativa de pagamento
type PaymentNotice struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PaymentResponse é a resposta de POST /api/payments
type PaymentResponse struct {
	Notice PaymentNotice `json:"notice"`
	Screen ScreenView    `json:"screen"`
}

type productRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type updateFormRequest struct {
	Name  *string `json:"name,omitempty"`
	Price *string `json:"price,omitempty"`
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
}

type errorBody struct {
	Error string `json:"error"`
}

// APIError é um erro devolvido pelo storefront-service
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront returned %d: %s", e.Status, e.Message)
}

// StorefrontClient chama a API HTTP do storefront-service
type StorefrontClient struct {
	http *resty.Client
}

// NewStorefrontClient cria um cliente para a sessão informada
func NewStorefrontClient(baseURL, sessionID string) *StorefrontClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Session-ID", sessionID)

	return &StorefrontClient{http: client}
}

func (c *StorefrontClient) do(ctx context.Context, method, path string, params map[string]string, body, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetPathParams(params).
		SetResult(out).
		SetError(&errorBody{})
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}

	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode(), Message: resp.Status()}
		if e, ok := resp.Error().(*errorBody); ok && e.Error != "" {
			apiErr.Message = e.Error
		}
		return apiErr
	}
	return nil
}

func (c *StorefrontClient) screen(ctx context.Context, method, path string, params map[string]string, body any) (ScreenView, error) {
	var view ScreenView
	if err := c.do(ctx, method, path, params, body, &view); err != nil {
		return ScreenView{}, err
	}
	return view, nil
}

func (c *StorefrontClient) Screen(ctx context.Context) (ScreenView, error) {
	return c.screen(ctx, http.MethodGet, "/api/screen", nil, nil)
}

func (c *StorefrontClient) UpdateForm(ctx context.Context, name, price *string) (ScreenView, error) {
	return c.screen(ctx, http.MethodPut, "/api/form", nil, updateFormRequest{Name: name, Price: price})
}

func (c *StorefrontClient) Submit(ctx context.Context) (ScreenView, error) {
	return c.screen(ctx, http.MethodPost, "/api/form/submit", nil, nil)
}

func (c *StorefrontClient) CancelEdit(ctx context.Context) (ScreenView, error) {
	return c.screen(ctx, http.MethodPost, "/api/form/cancel", nil, nil)
}

func (c *StorefrontClient) AddProduct(ctx context.Context, name, price string) (ScreenView, error) {
	return c.screen(ctx, http.MethodPost, "/api/products", nil, productRequest{Name: name, Price: price})
}

func (c *StorefrontClient) BeginEdit(ctx context.Context, productID string) (ScreenView, error) {
	return c.screen(ctx, http.MethodPost, "/api/products/{id}/edit", map[string]string{"id": productID}, nil)
}

func (c *StorefrontClient) CommitEdit(ctx context.Context, name, price string) (ScreenView, error) {
	return c.screen(ctx, http.MethodPost, "/api/edit/commit", nil, productRequest{Name: name, Price: price})
}

func (c *StorefrontClient) DeleteProduct(ctx context.Context, productID string) (ScreenView, error) {
	return c.screen(ctx, http.MethodDelete, "/api/products/{id}", map[string]string{"id": productID}, nil)
}

func (c *StorefrontClient) AddToCart(ctx context.Context, productID string) (ScreenView, error) {
	return c.screen(ctx, http.MethodPost, "/api/cart", nil, addToCartRequest{ProductID: productID})
}

func (c *StorefrontClient) ProcessPayment(ctx context.Context) (PaymentResponse, error) {
	var resp PaymentResponse
	if err := c.do(ctx, http.MethodPost, "/api/payments", nil, nil, &resp); err != nil {
		return PaymentResponse{}, err
	}
	return resp, nil
}
