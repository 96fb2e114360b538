package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const sessionHeader = "X-Session-ID"

// UpdateFormRequest representa a digitação nos campos do formulário.
// Campos ausentes não são alterados.
type UpdateFormRequest struct {
	Name  *string `json:"name"`
	Price *string `json:"price"`
}

// ProductRequest representa nome e preço enviados pelo formulário
type ProductRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// AddToCartRequest representa a requisição para adicionar um produto ao carrinho
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// PaymentResponse é a resposta do processamento de pagamento
type PaymentResponse struct {
	Notice PaymentNotice `json:"notice"`
	Screen ScreenView    `json:"screen"`
}

// StorefrontUseCaseInterface define a interface para o use case
type StorefrontUseCaseInterface interface {
	Screen(ctx context.Context, sessionID string) (ScreenView, error)
	UpdateForm(ctx context.Context, sessionID string, name, price *string) (ScreenView, error)
	Submit(ctx context.Context, sessionID string) (ScreenView, error)
	CancelEdit(ctx context.Context, sessionID string) (ScreenView, error)
	AddProduct(ctx context.Context, sessionID, name, price string) (ScreenView, error)
	BeginEdit(ctx context.Context, sessionID, productID string) (ScreenView, error)
	CommitEdit(ctx context.Context, sessionID, name, price string) (ScreenView, error)
	DeleteProduct(ctx context.Context, sessionID, productID string) (ScreenView, error)
	AddToCart(ctx context.Context, sessionID, productID string) (ScreenView, error)
	ProcessPayment(ctx context.Context, sessionID string) (PaymentNotice, ScreenView, error)
}

// StorefrontHandler contém os handlers HTTP
type StorefrontHandler struct {
	useCase          StorefrontUseCaseInterface
	tracer           trace.Tracer
	defaultSessionID string
}

// NewStorefrontHandler cria uma nova instância de StorefrontHandler
func NewStorefrontHandler(useCase StorefrontUseCaseInterface, tracer trace.Tracer, defaultSessionID string) *StorefrontHandler {
	return &StorefrontHandler{
		useCase:          useCase,
		tracer:           tracer,
		defaultSessionID: defaultSessionID,
	}
}

// RegisterRoutes registra as rotas no router
func (h *StorefrontHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")
	api.GET("/screen", h.GetScreen)

	api.PUT("/form", h.UpdateForm)
	api.POST("/form/submit", h.Submit)
	api.POST("/form/cancel", h.CancelEdit)

	api.POST("/products", h.AddProduct)
	api.POST("/edit/commit", h.CommitEdit)
	api.POST("/products/:id/edit", h.BeginEdit)
	api.DELETE("/products/:id", h.DeleteProduct)

	api.POST("/cart", h.AddToCart)
	api.POST("/payments", h.ProcessPayment)
}

func (h *StorefrontHandler) sessionID(c *gin.Context) string {
	if id := c.GetHeader(sessionHeader); id != "" {
		return id
	}
	return h.defaultSessionID
}

func (h *StorefrontHandler) start(c *gin.Context, operationName string) (context.Context, trace.Span, string) {
	sessionID := h.sessionID(c)
	ctx, span := h.tracer.Start(c.Request.Context(), operationName)
	span.SetAttributes(attribute.String("session_id", sessionID))
	return ctx, span, sessionID
}

func (h *StorefrontHandler) fail(c *gin.Context, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// GetScreen retorna a visão atual da tela
func (h *StorefrontHandler) GetScreen(c *gin.Context) {
	ctx, span, sessionID := h.start(c, "get_screen")
	defer span.End()

	view, err := h.useCase.Screen(ctx, sessionID)
	if err != nil {
		h.fail(c, span, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateForm recebe a digitação nos campos de nome e preço
func (h *StorefrontHandler) UpdateForm(c *gin.Context) {
	ctx, span, sessionID := h.start(c, "update_form")
	defer span.End()

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.useCase.UpdateForm(ctx, sessionID, req.Name, req.Price)
	if err != nil {
		h.fail(c, span, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit é o botão principal do formulário
func (h *StorefrontHandler) Submit(c *gin.Context) {
	ctx, span, sessionID := h.start(c, "submit_form")
	defer span.End()

	view, err := h.useCase.Submit(ctx, sessionID)
	if err != nil {
		h.fail(c, span, err)
		return
	}
	span.SetAttributes(attribute.Int("catalog_size", len(view.Products)))
	c.JSON(http.StatusOK, view)
}

// CancelEdit descarta a edição em andamento
func (h *StorefrontHandler) CancelEdit(c *gin.Context) {
	ctx, span, sessionID := h.start(c, "cancel_edit")
	defer span.End()

	view, err := h.useCase.CancelEdit(ctx, sessionID)
	if err != nil {
		h.fail(c, span, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddProduct adiciona um produto ao catálogo
func (h *StorefrontHandler) AddProduct(c *gin.Context) {
	ctx, span, sessionID := h.start(c, "add_product")
	defer span.End()

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("name", req.Name),
		attribute.String("price", req.Price),
	)

	view, err := h.useCase.AddProduct(ctx, sessionID, req.Name, req.Price)
	if err != nil {
		h.fail(c, span, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// BeginEdit abre a edição de um produto
func (h *StorefrontHandler) BeginEdit(c *gin.Context) {
	ctx, span, sessionID := h.start(c, "begin_edit")
	defer span.End()

	productID := c.Param("id")
	span.SetAttributes(attribute.String("product_id", productID))

	view, err := h.useCase.BeginEdit(ctx, sessionID, productID)
	if err != nil {
		h.fail(c, span, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CommitEdit confirma a edição em andamento
func (h *StorefrontHandler) CommitEdit(c *gin.Context) {
	ctx, span, sessionID := h.start(c, "commit_edit")
	defer span.End()

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.useCase.CommitEdit(ctx, sessionID, req.Name, req.Price)
	if err != nil {
		h.fail(c, span, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteProduct remove um produto do catálogo
func (h *StorefrontHandler) DeleteProduct(c *gin.Context) {
	ctx, span, sessionID := h.start(c, "delete_product")
	defer span.End()

	productID := c.Param("id")
	span.SetAttributes(attribute.String("product_id", productID))

	view, err := h.useCase.DeleteProduct(ctx, sessionID, productID)
	if err != nil {
		h.fail(c, span, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddToCart adiciona um produto do catálogo ao carrinho
func (h *StorefrontHandler) AddToCart(c *gin.Context) {
	ctx, span, sessionID := h.start(c, "add_to_cart")
	defer span.End()

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.String("product_id", req.ProductID))

	view, err := h.useCase.AddToCart(ctx, sessionID, req.ProductID)
	if err != nil {
		h.fail(c, span, err)
		return
	}
	span.SetAttributes(attribute.String("total", view.Total))
	c.JSON(http.StatusOK, view)
}

// ProcessPayment processa o pagamento do carrinho
func (h *StorefrontHandler) ProcessPayment(c *gin.Context) {
	ctx, span, sessionID := h.start(c, "process_payment")
	defer span.End()

	notice, view, err := h.useCase.ProcessPayment(ctx, sessionID)
	if err != nil {
		h.fail(c, span, err)
		return
	}

	span.SetAttributes(attribute.Bool("payment.success", notice.Success))
	c.JSON(http.StatusOK, PaymentResponse{Notice: notice, Screen: view})
}

// HealthCheck verifica a saúde do serviço
func (h *StorefrontHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storefront-service",
	})
}
