package cli

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/render"
	"catalog/admin/internal/service"
	"catalog/admin/internal/workflow"
)

func (c *CLI) products(ctx context.Context, args []string) error {
	act, args, err := action(args, "list", "show", "create", "update", "delete", "attach-promotion", "image")
	if err != nil {
		return err
	}

	fs := c.flags("products " + act)
	id := fs.String("id", "", "product id (file id for image)")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 0, "page size (default from config)")
	name := fs.StringP("name", "n", "", "product name")
	description := fs.String("description", "", "description, HTML allowed")
	price := fs.Float64("price", 0, "unit price")
	stock := fs.Int("stock", 0, "quantity in stock")
	specs := fs.StringSlice("spec", nil, "specification id (repeatable)")
	images := fs.StringSlice("image", nil, "image file to upload (repeatable)")
	replaceImages := fs.Bool("replace-images", false, "drop the current images instead of adding to them")
	spreadsheet := fs.String("spreadsheet", "", "specification spreadsheet to upload")
	promotions := fs.StringSlice("promotion", nil, "promotion id (only the first is attached)")
	start := fs.String("start", "", "promotion start, e.g. 2024-01-01T00:00")
	end := fs.String("end", "", "promotion end")
	out := fs.StringP("out", "o", "", "where image writes the file (default stdout)")
	if err := parse(fs, args); err != nil {
		return err
	}

	switch act {
	case "list":
		views, err := c.app.Products.List(ctx, domain.Page{Number: *page, Size: *size})
		if err != nil {
			return err
		}
		render.Products(c.out, views)
		return nil

	case "show":
		view, err := c.app.Products.Get(ctx, domain.ID(*id))
		if err != nil {
			return err
		}
		c.showProduct(ctx, view)
		return nil

	case "create":
		files, closeFiles, err := openFiles(*images)
		if err != nil {
			return err
		}
		defer closeFiles()

		err = c.app.Products.Create(ctx, client.ProductForm{
			Name:             *name,
			Description:      *description,
			UnitPrice:        *price,
			QuantityInStock:  *stock,
			SpecificationIDs: domain.IDs(*specs),
			Images:           files,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Product %s created\n", *name)
		return nil

	case "update":
		current, err := c.app.Products.Get(ctx, domain.ID(*id))
		if err != nil {
			return err
		}
		p := current.Product

		in := workflow.SaveInput{
			ProductID:           p.ID,
			Name:                p.Name,
			Description:         p.Description,
			UnitPrice:           p.UnitPrice,
			QuantityInStock:     p.QuantityInStock,
			SpecificationIDs:    p.SpecificationIDs,
			ExistingImages:      p.ImageURLs,
			ExistingSpreadsheet: p.SpecificationExcelURL,
		}
		if fs.Changed("name") {
			in.Name = *name
		}
		if fs.Changed("description") {
			in.Description = *description
		}
		if fs.Changed("price") {
			in.UnitPrice = *price
		}
		if fs.Changed("stock") {
			in.QuantityInStock = *stock
		}
		if fs.Changed("spec") {
			in.SpecificationIDs = domain.IDs(*specs)
		}
		if *replaceImages {
			in.ExistingImages = nil
		}

		files, closeFiles, err := openFiles(*images)
		if err != nil {
			return err
		}
		defer closeFiles()
		in.NewImages = files

		if *spreadsheet != "" {
			sheet, closeSheet, err := openFiles([]string{*spreadsheet})
			if err != nil {
				return err
			}
			defer closeSheet()
			in.Spreadsheet = &sheet[0]
		}

		view, err := c.app.Products.Save(ctx, in)
		if err != nil {
			return err
		}
		c.showProduct(ctx, view)
		return nil

	case "delete":
		if err := c.app.Products.Delete(ctx, domain.ID(*id)); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Product %s deleted\n", *id)
		return nil

	case "attach-promotion":
		in := service.AttachInput{
			ProductID:    domain.ID(*id),
			PromotionIDs: domain.IDs(*promotions),
		}
		if in.StartDate, err = optionalTimestamp("start", *start); err != nil {
			return err
		}
		if in.EndDate, err = optionalTimestamp("end", *end); err != nil {
			return err
		}

		view, err := c.app.Products.AttachPromotion(ctx, in)
		if err != nil {
			return err
		}
		c.showProduct(ctx, view)
		return nil

	case "image":
		return c.downloadImage(ctx, *id, *out)
	}
	return nil
}

func (c *CLI) downloadImage(ctx context.Context, fileID, path string) error {
	if fileID == "" {
		return fmt.Errorf("%w: --id is required", ErrUsage)
	}
	if path == "" {
		return c.app.Client.DownloadFile(ctx, fileID, c.out)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := c.app.Client.DownloadFile(ctx, fileID, f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Infof("🖼️ Saved file %s to %s", fileID, path)
	return nil
}

// showProduct prints the detail view. Specification names come from the
// tree; if it cannot be loaded the raw ids are shown.
func (c *CLI) showProduct(ctx context.Context, view *service.ProductView) {
	tree, err := c.app.Categories.Tree(ctx)
	if err != nil {
		log.Warnf("Failed to load categories for specification names: %v", err)
	}
	render.Product(c.out, *view, tree, c.app.Client.FileURL, c.now())
}

func optionalTimestamp(flag, value string) (domain.Timestamp, error) {
	if value == "" {
		return domain.Timestamp{}, nil
	}
	ts, err := domain.ParseTimestamp(value)
	if err != nil {
		return domain.Timestamp{}, fmt.Errorf("%w: --%s: %v", ErrUsage, flag, err)
	}
	return ts, nil
}
