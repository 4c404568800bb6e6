package cli

import (
	"context"
	"fmt"

	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/render"
)

func (c *CLI) promotions(ctx context.Context, args []string) error {
	act, args, err := action(args, "list", "show", "create", "update", "delete")
	if err != nil {
		return err
	}

	fs := c.flags("promotions " + act)
	id := fs.String("id", "", "promotion id")
	name := fs.StringP("name", "n", "", "promotion name")
	typeID := fs.String("type", "", "promotion type id")
	description := fs.String("description", "", "description")
	rate := fs.Float64("rate", 0, "discount rate in percent")
	amount := fs.Float64("amount", 0, "fixed discount amount")
	limit := fs.Int("limit", 0, "usage limit")
	if err := parse(fs, args); err != nil {
		return err
	}

	in := client.PromotionInput{
		Name:            *name,
		PromotionTypeID: domain.ID(*typeID),
		Description:     *description,
		DiscountRate:    *rate,
		DiscountAmount:  *amount,
		Limit:           *limit,
	}

	var list []domain.Promotion
	switch act {
	case "list":
		list, err = c.app.Promotions.List(ctx)
	case "show":
		p, err := c.app.Promotions.Get(ctx, domain.ID(*id))
		if err != nil {
			return err
		}
		render.Promotions(c.out, []domain.Promotion{*p})
		if p.Description != "" {
			fmt.Fprintf(c.out, "\n%s\n", render.PlainText(p.Description))
		}
		return nil
	case "create":
		list, err = c.app.Promotions.Create(ctx, in)
	case "update":
		list, err = c.app.Promotions.Update(ctx, domain.ID(*id), in)
	case "delete":
		list, err = c.app.Promotions.Delete(ctx, domain.ID(*id))
	}
	if err != nil {
		return err
	}

	render.Promotions(c.out, list)
	return nil
}

func (c *CLI) promotionTypes(ctx context.Context, args []string) error {
	act, args, err := action(args, "list", "show", "create", "update", "delete")
	if err != nil {
		return err
	}

	fs := c.flags("promotion-types " + act)
	id := fs.String("id", "", "promotion type id")
	name := fs.StringP("name", "n", "", "type name")
	description := fs.String("description", "", "description")
	if err := parse(fs, args); err != nil {
		return err
	}

	in := client.PromotionTypeInput{Name: *name, Description: *description}

	var list []domain.PromotionType
	switch act {
	case "list":
		list, err = c.app.PromotionTypes.List(ctx)
	case "show":
		pt, err := c.app.PromotionTypes.Get(ctx, domain.ID(*id))
		if err != nil {
			return err
		}
		list = []domain.PromotionType{*pt}
	case "create":
		list, err = c.app.PromotionTypes.Create(ctx, in)
	case "update":
		list, err = c.app.PromotionTypes.Update(ctx, domain.ID(*id), in)
	case "delete":
		list, err = c.app.PromotionTypes.Delete(ctx, domain.ID(*id))
	}
	if err != nil {
		return err
	}

	render.PromotionTypes(c.out, list)
	return nil
}
