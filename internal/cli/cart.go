package cli

import (
	"context"

	"catalog/admin/internal/domain"
	"catalog/admin/internal/render"
)

func (c *CLI) cart(ctx context.Context, args []string) error {
	act, args, err := action(args, "show", "add", "qty", "remove", "clear")
	if err != nil {
		return err
	}

	fs := c.flags("cart " + act)
	product := fs.String("product", "", "product id")
	item := fs.String("item", "", "cart item id")
	quantity := fs.IntP("quantity", "q", 1, "quantity")
	if err := parse(fs, args); err != nil {
		return err
	}

	var cart *domain.Cart
	switch act {
	case "show":
		cart, err = c.app.Cart.Get(ctx)
	case "add":
		cart, err = c.app.Cart.Add(ctx, domain.ID(*product), *quantity)
	case "qty":
		cart, err = c.app.Cart.ChangeQuantity(ctx, domain.ID(*item), *quantity)
	case "remove":
		cart, err = c.app.Cart.Remove(ctx, domain.ID(*item))
	case "clear":
		cart, err = c.app.Cart.Clear(ctx)
	}
	if err != nil {
		return err
	}

	render.Cart(c.out, cart)
	return nil
}
