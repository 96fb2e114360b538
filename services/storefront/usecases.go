package main

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StorefrontUseCase contém a lógica de aplicação da tela de produtos e carrinho.
// Cada operação carrega o estado da sessão, aplica a transição e salva o resultado.
type StorefrontUseCase struct {
	// mu serializa as operações: elas executam na ordem em que chegam e nunca se intercalam
	mu         sync.Mutex
	repository Repository
	logger     zerolog.Logger

	productsCreated metric.Int64Counter
	cartItemsAdded  metric.Int64Counter
	payments        metric.Int64Counter
	revenue         metric.Float64Counter
}

// NewStorefrontUseCase cria uma nova instância de StorefrontUseCase
func NewStorefrontUseCase(repository Repository, meter metric.Meter, logger zerolog.Logger) (*StorefrontUseCase, error) {
	productsCreated, err := meter.Int64Counter("storefront.products.created",
		metric.WithDescription("Products added to the catalog"))
	if err != nil {
		return nil, errors.Wrap(err, "create products counter")
	}

	cartItemsAdded, err := meter.Int64Counter("storefront.cart.items_added",
		metric.WithDescription("Products added to the cart"))
	if err != nil {
		return nil, errors.Wrap(err, "create cart counter")
	}

	payments, err := meter.Int64Counter("storefront.payments",
		metric.WithDescription("Payment attempts by outcome"))
	if err != nil {
		return nil, errors.Wrap(err, "create payments counter")
	}

	revenue, err := meter.Float64Counter("storefront.revenue",
		metric.WithDescription("Sum of settled cart totals"))
	if err != nil {
		return nil, errors.Wrap(err, "create revenue counter")
	}

	return &StorefrontUseCase{
		repository:      repository,
		logger:          logger,
		productsCreated: productsCreated,
		cartItemsAdded:  cartItemsAdded,
		payments:        payments,
		revenue:         revenue,
	}, nil
}

// mutate aplica fn ao estado da sessão e persiste o resultado. Se fn falhar,
// nada é salvo.
func (uc *StorefrontUseCase) mutate(ctx context.Context, sessionID string, fn func(State) (State, error)) (State, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	state, err := uc.repository.GetState(ctx, sessionID)
	if err != nil {
		return State{}, errors.Wrap(err, "load session state")
	}

	next, err := fn(state)
	if err != nil {
		return state, err
	}

	if err := uc.repository.SaveState(ctx, sessionID, next); err != nil {
		return state, errors.Wrap(err, "save session state")
	}
	return next, nil
}

// Screen retorna a visão atual da tela
func (uc *StorefrontUseCase) Screen(ctx context.Context, sessionID string) (ScreenView, error) {
	uc.mu.Lock()
	state, err := uc.repository.GetState(ctx, sessionID)
	uc.mu.Unlock()
	if err != nil {
		return ScreenView{}, errors.Wrap(err, "load session state")
	}
	return NewScreenView(state), nil
}

// UpdateForm aplica a edição de texto nos campos informados
func (uc *StorefrontUseCase) UpdateForm(ctx context.Context, sessionID string, name, price *string) (ScreenView, error) {
	state, err := uc.mutate(ctx, sessionID, func(s State) (State, error) {
		if name != nil {
			s = s.SetFormName(*name)
		}
		if price != nil {
			s = s.SetFormPrice(*price)
		}
		return s, nil
	})
	if err != nil {
		return ScreenView{}, err
	}
	return NewScreenView(state), nil
}

// Submit executa o botão principal (adicionar ou atualizar)
func (uc *StorefrontUseCase) Submit(ctx context.Context, sessionID string) (ScreenView, error) {
	var before int
	var mode Mode
	state, err := uc.mutate(ctx, sessionID, func(s State) (State, error) {
		before = len(s.Catalog)
		mode = s.Mode()
		return s.Submit()
	})
	if err != nil {
		uc.logger.Warn().Err(err).Str("session_id", sessionID).Str("mode", string(mode)).Msg("⚠️ submit rejected")
		return ScreenView{}, err
	}

	uc.recordCreated(ctx, sessionID, before, state)
	if mode == ModeEdit {
		uc.logger.Info().Str("session_id", sessionID).Msg("✏️ product updated")
	}
	return NewScreenView(state), nil
}

// AddProduct adiciona um produto ao catálogo
func (uc *StorefrontUseCase) AddProduct(ctx context.Context, sessionID, name, price string) (ScreenView, error) {
	var before int
	state, err := uc.mutate(ctx, sessionID, func(s State) (State, error) {
		before = len(s.Catalog)
		return s.AddProduct(name, price)
	})
	if err != nil {
		uc.logger.Warn().Err(err).Str("session_id", sessionID).Str("name", name).Msg("⚠️ add product rejected")
		return ScreenView{}, err
	}

	uc.recordCreated(ctx, sessionID, before, state)
	return NewScreenView(state), nil
}

func (uc *StorefrontUseCase) recordCreated(ctx context.Context, sessionID string, before int, state State) {
	if len(state.Catalog) <= before {
		return
	}
	created := state.Catalog[len(state.Catalog)-1]
	uc.productsCreated.Add(ctx, 1)
	uc.logger.Info().
		Str("session_id", sessionID).
		Str("product_id", created.ID).
		Str("name", created.Name).
		Str("price", created.Price.String()).
		Msg("✅ product created")
}

// BeginEdit abre a edição do produto informado
func (uc *StorefrontUseCase) BeginEdit(ctx context.Context, sessionID, productID string) (ScreenView, error) {
	state, err := uc.mutate(ctx, sessionID, func(s State) (State, error) {
		p, ok := s.FindProduct(productID)
		if !ok {
			return s, errors.Wrapf(ErrProductNotFound, "begin edit %s", productID)
		}
		return s.BeginEdit(p), nil
	})
	if err != nil {
		return ScreenView{}, err
	}

	uc.logger.Info().Str("session_id", sessionID).Str("product_id", productID).Msg("✏️ edit started")
	return NewScreenView(state), nil
}

// CommitEdit confirma a edição com os valores informados
func (uc *StorefrontUseCase) CommitEdit(ctx context.Context, sessionID, name, price string) (ScreenView, error) {
	var productID string
	state, err := uc.mutate(ctx, sessionID, func(s State) (State, error) {
		if s.Editing != nil {
			productID = s.Editing.ProductID
		}
		return s.CommitEdit(name, price)
	})
	if err != nil {
		uc.logger.Warn().Err(err).Str("session_id", sessionID).Msg("⚠️ commit edit rejected")
		return ScreenView{}, err
	}

	uc.logger.Info().Str("session_id", sessionID).Str("product_id", productID).Msg("✏️ product updated")
	return NewScreenView(state), nil
}

// CancelEdit descarta a edição em andamento
func (uc *StorefrontUseCase) CancelEdit(ctx context.Context, sessionID string) (ScreenView, error) {
	state, err := uc.mutate(ctx, sessionID, func(s State) (State, error) {
		return s.CancelEdit(), nil
	})
	if err != nil {
		return ScreenView{}, err
	}
	return NewScreenView(state), nil
}

// DeleteProduct remove o produto do catálogo
func (uc *StorefrontUseCase) DeleteProduct(ctx context.Context, sessionID, productID string) (ScreenView, error) {
	state, err := uc.mutate(ctx, sessionID, func(s State) (State, error) {
		return s.DeleteProduct(productID), nil
	})
	if err != nil {
		return ScreenView{}, err
	}

	uc.logger.Info().Str("session_id", sessionID).Str("product_id", productID).Msg("🗑️ product deleted")
	return NewScreenView(state), nil
}

// AddToCart copia o produto do catálogo para o carrinho
func (uc *StorefrontUseCase) AddToCart(ctx context.Context, sessionID, productID string) (ScreenView, error) {
	state, err := uc.mutate(ctx, sessionID, func(s State) (State, error) {
		p, ok := s.FindProduct(productID)
		if !ok {
			return s, errors.Wrapf(ErrProductNotFound, "add to cart %s", productID)
		}
		return s.AddToCart(p), nil
	})
	if err != nil {
		return ScreenView{}, err
	}

	uc.cartItemsAdded.Add(ctx, 1)
	uc.logger.Info().
		Str("session_id", sessionID).
		Str("product_id", productID).
		Str("total", state.Total().StringFixed(2)).
		Msg("🛒 added to cart")
	return NewScreenView(state), nil
}

// ProcessPayment simula o pagamento do carrinho
func (uc *StorefrontUseCase) ProcessPayment(ctx context.Context, sessionID string) (PaymentNotice, ScreenView, error) {
	var notice PaymentNotice
	var settled State
	state, err := uc.mutate(ctx, sessionID, func(s State) (State, error) {
		settled = s
		next, n := s.ProcessPayment()
		notice = n
		return next, nil
	})
	if err != nil {
		return PaymentNotice{}, ScreenView{}, err
	}

	outcome := "empty_cart"
	if notice.Success {
		outcome = "success"
		amount, _ := settled.Total().Float64()
		uc.revenue.Add(ctx, amount)
		uc.logger.Info().
			Str("session_id", sessionID).
			Int("items", len(settled.Cart)).
			Str("total", settled.Total().StringFixed(2)).
			Msg("💳 payment processed")
	} else {
		uc.logger.Info().Str("session_id", sessionID).Msg("ℹ️ payment attempted with empty cart")
	}
	uc.payments.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	return notice, NewScreenView(state), nil
}
