package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrNoSuchRow      = errors.New("no such row")
)

const helpText = `commands:
  show                  render the screen
  name <text>           type into the product name field
  price <text>          type into the price field
  submit                press the Add/Update Product button
  add <name> <price>    add a product directly
  edit <id|#row>        edit a product
  commit <name> <price> update the product being edited
  cancel                cancel the current edit
  delete <id|#row>      delete a product
  cart <id|#row>        add a product to the cart
  pay                   process payment
  help                  show this help
  quit                  exit`

// Terminal liga os comandos digitados à API do storefront-service
type Terminal struct {
	client *StorefrontClient
	out    io.Writer
	logger zerolog.Logger
	last   ScreenView
}

// NewTerminal cria uma nova instância de Terminal
func NewTerminal(client *StorefrontClient, out io.Writer, logger zerolog.Logger) *Terminal {
	return &Terminal{
		client: client,
		out:    out,
		logger: logger,
	}
}

// Execute interpreta uma linha de comando. Retorna quit=true quando o usuário pede para sair.
func (t *Terminal) Execute(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	cmd, rest, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(t.out, helpText)
		return false, nil
	case "show":
		return false, t.render(t.client.Screen(ctx))
	case "name":
		return false, t.render(t.client.UpdateForm(ctx, &rest, nil))
	case "price":
		return false, t.render(t.client.UpdateForm(ctx, nil, &rest))
	case "submit":
		return false, t.render(t.client.Submit(ctx))
	case "cancel":
		return false, t.render(t.client.CancelEdit(ctx))
	case "add", "commit":
		name, price, err := splitNamePrice(rest)
		if err != nil {
			return false, errors.Wrapf(err, "%s <name> <price>", cmd)
		}
		if cmd == "add" {
			return false, t.render(t.client.AddProduct(ctx, name, price))
		}
		return false, t.render(t.client.CommitEdit(ctx, name, price))
	case "edit", "delete", "cart":
		id, err := t.resolveProduct(rest)
		if err != nil {
			return false, err
		}
		switch cmd {
		case "edit":
			return false, t.render(t.client.BeginEdit(ctx, id))
		case "delete":
			return false, t.render(t.client.DeleteProduct(ctx, id))
		default:
			return false, t.render(t.client.AddToCart(ctx, id))
		}
	case "pay":
		resp, err := t.client.ProcessPayment(ctx)
		if err != nil {
			return false, err
		}
		RenderNotice(t.out, resp.Notice)
		return false, t.render(resp.Screen, nil)
	default:
		return false, errors.Wrapf(ErrUnknownCommand, "%q", cmd)
	}
}

func (t *Terminal) render(view ScreenView, err error) error {
	if err != nil {
		return err
	}
	t.last = view
	Render(t.out, view)
	return nil
}

// resolveProduct aceita um ID ou "#n", a n-ésima linha da última tela renderizada
func (t *Terminal) resolveProduct(arg string) (string, error) {
	if arg == "" {
		return "", errors.Wrap(ErrUsage, "product id or #row required")
	}
	if !strings.HasPrefix(arg, "#") {
		return arg, nil
	}

	n, err := strconv.Atoi(arg[1:])
	if err != nil || n < 1 || n > len(t.last.Products) {
		return "", errors.Wrapf(ErrNoSuchRow, "%s", arg)
	}
	t.logger.Debug().Str("row", arg).Str("product_id", t.last.Products[n-1].ID).Msg("resolved row")
	return t.last.Products[n-1].ID, nil
}

// splitNamePrice separa "<name> <price>": o preço é a última palavra, o nome é o resto
func splitNamePrice(rest string) (string, string, error) {
	idx := strings.LastIndex(rest, " ")
	if idx < 0 {
		return "", "", ErrUsage
	}
	name := strings.TrimSpace(rest[:idx])
	price := strings.TrimSpace(rest[idx+1:])
	if name == "" || price == "" {
		return "", "", ErrUsage
	}
	return name, price, nil
}
