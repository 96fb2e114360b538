package main

import (
	"regexp"
	"slices"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product representa um item do catálogo
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewProduct cria uma nova instância de Product com um ID novo
func NewProduct(name string, price decimal.Decimal) Product {
	return Product{
		ID:    uuid.New().String(),
		Name:  name,
		Price: price,
	}
}

// Form guarda o texto cru dos campos de nome e preço
type Form struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// EditSession aponta para o produto em edição
type EditSession struct {
	ProductID string `json:"product_id"`
}

// Mode representa o modo do formulário
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// PaymentNotice é o aviso exibido ao usuário após uma tentativa de pagamento
type PaymentNotice struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	PaymentSuccessMessage = "Payment successful! Thank you for your purchase."
	EmptyCartMessage      = "Your cart is empty."
)

// State é o estado completo da tela: catálogo, formulário, sessão de edição,
// carrinho e flag de pagamento. Toda transição recebe o valor atual e devolve
// um novo valor, sem compartilhar slices com a entrada.
type State struct {
	Catalog          []Product    `json:"catalog"`
	Cart             []Product    `json:"cart"`
	Form             Form         `json:"form"`
	Editing          *EditSession `json:"editing,omitempty"`
	PaymentSucceeded bool         `json:"payment_succeeded"`
}

// NewState cria um estado vazio
func NewState() State {
	return State{
		Catalog: []Product{},
		Cart:    []Product{},
	}
}

func (s State) clone() State {
	out := s
	out.Catalog = slices.Clone(s.Catalog)
	out.Cart = slices.Clone(s.Cart)
	if s.Editing != nil {
		e := *s.Editing
		out.Editing = &e
	}
	if out.Catalog == nil {
		out.Catalog = []Product{}
	}
	if out.Cart == nil {
		out.Cart = []Product{}
	}
	return out
}

// Mode retorna ModeEdit quando há uma sessão de edição ativa
func (s State) Mode() Mode {
	if s.Editing != nil {
		return ModeEdit
	}
	return ModeAdd
}

// Total soma os preços do carrinho
func (s State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Cart {
		total = total.Add(p.Price)
	}
	return total
}

// FindProduct busca um produto do catálogo pelo ID
func (s State) FindProduct(id string) (Product, bool) {
	for _, p := range s.Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// SetFormName atualiza o campo de nome
func (s State) SetFormName(text string) State {
	out := s.clone()
	out.Form.Name = text
	return out
}

// SetFormPrice atualiza o campo de preço
func (s State) SetFormPrice(text string) State {
	out := s.clone()
	out.Form.Price = text
	return out
}

// priceFormat aceita só notação decimal simples, sem expoente, com até 15
// dígitos inteiros e 10 casas decimais.
var priceFormat = regexp.MustCompile(`^-?(\d{1,15}(\.\d{0,10})?|\.\d{1,10})$`)

// ParsePrice converte o texto do preço em decimal. Texto não numérico,
// notação científica, valores grandes demais ou negativos são rejeitados.
func ParsePrice(text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	if !priceFormat.MatchString(trimmed) {
		return decimal.Zero, errors.Wrapf(ErrMalformedPrice, "parse %q", text)
	}
	price, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrMalformedPrice, "parse %q", text)
	}
	if price.IsNegative() {
		return decimal.Zero, errors.Wrapf(ErrNegativePrice, "parse %q", text)
	}
	return price, nil
}

// AddProduct adiciona um produto ao fim do catálogo e limpa o formulário.
// Nome ou preço vazios não alteram nada.
func (s State) AddProduct(name, price string) (State, error) {
	if name == "" || price == "" {
		return s.clone(), nil
	}

	parsed, err := ParsePrice(price)
	if err != nil {
		return s.clone(), err
	}

	out := s.clone()
	out.Catalog = append(out.Catalog, NewProduct(name, parsed))
	out.Form = Form{}
	return out, nil
}

// BeginEdit abre a sessão de edição e copia os valores do produto para o formulário
func (s State) BeginEdit(p Product) State {
	out := s.clone()
	out.Editing = &EditSession{ProductID: p.ID}
	out.Form = Form{Name: p.Name, Price: p.Price.String()}
	return out
}

// CommitEdit substitui nome e preço do produto em edição, mantendo ID e posição.
// Nome ou preço vazios não alteram nada e a edição continua aberta.
func (s State) CommitEdit(name, price string) (State, error) {
	if s.Editing == nil {
		return s.clone(), ErrNoActiveEdit
	}
	if name == "" || price == "" {
		return s.clone(), nil
	}

	parsed, err := ParsePrice(price)
	if err != nil {
		return s.clone(), err
	}

	out := s.clone()
	for i := range out.Catalog {
		if out.Catalog[i].ID == s.Editing.ProductID {
			out.Catalog[i].Name = name
			out.Catalog[i].Price = parsed
		}
	}
	out.Editing = nil
	out.Form = Form{}
	return out, nil
}

// CancelEdit descarta a sessão de edição
func (s State) CancelEdit() State {
	out := s.clone()
	out.Editing = nil
	out.Form = Form{}
	return out
}

// Submit é o botão principal: confirma a edição ou adiciona um produto
// conforme o modo atual, usando os valores do formulário
func (s State) Submit() (State, error) {
	if s.Mode() == ModeEdit {
		return s.CommitEdit(s.Form.Name, s.Form.Price)
	}
	return s.AddProduct(s.Form.Name, s.Form.Price)
}

// DeleteProduct remove o produto com o ID informado, se existir
func (s State) DeleteProduct(id string) State {
	out := s.clone()
	out.Catalog = slices.DeleteFunc(out.Catalog, func(p Product) bool {
		return p.ID == id
	})
	return out
}

// AddToCart adiciona uma cópia do produto ao carrinho. Duplicatas são permitidas.
func (s State) AddToCart(p Product) State {
	out := s.clone()
	out.Cart = append(out.Cart, p)
	return out
}

// ProcessPayment esvazia o carrinho e marca o pagamento como concluído.
// Com o carrinho vazio apenas avisa o usuário e não altera nada.
func (s State) ProcessPayment() (State, PaymentNotice) {
	if len(s.Cart) == 0 {
		return s.clone(), PaymentNotice{Success: false, Message: EmptyCartMessage}
	}

	out := s.clone()
	out.PaymentSucceeded = true
	out.Cart = []Product{}
	return out, PaymentNotice{Success: true, Message: PaymentSuccessMessage}
}
