// Package render writes catalog data as plain-text tables for the console.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/PuerkitoBio/goquery"

	"catalog/admin/internal/catalog"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/pricing"
	"catalog/admin/internal/service"
)

const dateLayout = "2006-01-02 15:04"

// PlainText strips markup from a rich-text description. Block elements
// become line breaks and runs of whitespace collapse to one space.
func PlainText(html string) string {
	if !strings.Contains(html, "<") {
		return strings.TrimSpace(html)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Tree prints the hierarchy indented by level.
func Tree(w io.Writer, tree *catalog.Tree) {
	if tree.Len() == 0 {
		fmt.Fprintln(w, "No categories.")
		return
	}
	tree.Walk(func(n *catalog.Node) {
		fmt.Fprintf(w, "%s%s [%s]\n", strings.Repeat("  ", int(n.Level)-1), n.Name, n.ID)
	})
}

// Options prints an {id, name} list, as used to pick a parent.
func Options(w io.Writer, options []catalog.Option) {
	tw := newTable(w, "ID", "NAME")
	for _, o := range options {
		fmt.Fprintf(tw, "%s\t%s\n", o.ID, o.Name)
	}
	tw.Flush()
}

func Products(w io.Writer, views []service.ProductView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No products.")
		return
	}
	tw := newTable(w, "ID", "NAME", "PRICE", "STOCK", "PROMOTION")
	for _, v := range views {
		promo := ""
		if v.Price.HasDiscount {
			promo = fmt.Sprintf("-%s%%", trimZeros(v.Price.DiscountPercent))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", v.Product.ID, v.Product.Name, price(v.Price), v.Product.QuantityInStock, promo)
	}
	tw.Flush()
}

// Product prints the detail view of one product. fileURL turns stored
// file ids into addresses.
func Product(w io.Writer, v service.ProductView, tree *catalog.Tree, fileURL func(string) string, at time.Time) {
	p := v.Product
	fmt.Fprintf(w, "%s [%s]\n", p.Name, p.ID)
	fmt.Fprintf(w, "Price: %s\n", price(v.Price))
	fmt.Fprintf(w, "In stock: %d\n", p.QuantityInStock)

	if desc := PlainText(p.Description); desc != "" {
		fmt.Fprintf(w, "\n%s\n", desc)
	}

	if len(p.SpecificationIDs) > 0 {
		fmt.Fprintln(w, "\nSpecifications:")
		for _, id := range p.SpecificationIDs {
			name := id.String()
			if tree != nil {
				if path, ok := tree.Path(domain.LevelSpecification, id); ok {
					name = path
				}
			}
			fmt.Fprintf(w, "  %s\n", name)
		}
	}

	if len(p.ImageURLs) > 0 {
		fmt.Fprintln(w, "\nImages:")
		for _, id := range p.ImageURLs {
			fmt.Fprintf(w, "  %s\n", fileURL(id))
		}
	}
	if p.SpecificationExcelURL != "" {
		fmt.Fprintf(w, "\nSpecification sheet: %s\n", fileURL(p.SpecificationExcelURL))
	}

	if len(p.Promotions) > 0 {
		fmt.Fprintln(w, "\nPromotions:")
		tw := newTable(w, "NAME", "DISCOUNT", "FROM", "TO", "STATUS")
		for _, pp := range p.Promotions {
			discount := "-"
			if pp.DiscountPercent != nil {
				discount = trimZeros(*pp.DiscountPercent) + "%"
			}
			status := "inactive"
			if pricing.IsActive(pp, at) {
				status = "active"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", pp.Name, discount, date(pp.StartDate), date(pp.EndDate), status)
		}
		tw.Flush()
	}
}

func Cart(w io.Writer, cart *domain.Cart) {
	if cart.IsEmpty() {
		fmt.Fprintln(w, "Cart is empty.")
		return
	}
	tw := newTable(w, "ITEM", "PRODUCT", "UNIT PRICE", "QTY", "SUBTOTAL")
	for _, item := range cart.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			item.ID, item.ProductName, pricing.FormatPrice(item.UnitPrice), item.Quantity, pricing.FormatPrice(item.Subtotal()))
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL\t%s\n", pricing.FormatPrice(cart.Total()))
	tw.Flush()
}

func Promotions(w io.Writer, promotions []domain.Promotion) {
	if len(promotions) == 0 {
		fmt.Fprintln(w, "No promotions.")
		return
	}
	tw := newTable(w, "ID", "NAME", "TYPE", "RATE", "AMOUNT", "LIMIT", "FROM", "TO")
	for _, p := range promotions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s%%\t%s\t%d\t%s\t%s\n",
			p.ID, p.Name, p.PromotionTypeID, trimZeros(p.DiscountRate), pricing.FormatPrice(p.DiscountAmount),
			p.Limit, date(p.StartDate), date(p.EndDate))
	}
	tw.Flush()
}

func PromotionTypes(w io.Writer, types []domain.PromotionType) {
	if len(types) == 0 {
		fmt.Fprintln(w, "No promotion types.")
		return
	}
	tw := newTable(w, "ID", "NAME", "DESCRIPTION")
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Name, PlainText(t.Description))
	}
	tw.Flush()
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

// price shows the current price, followed by the original when a
// promotion applies.
func price(p pricing.DisplayPrice) string {
	if !p.HasDiscount {
		return pricing.FormatPrice(p.Current)
	}
	return fmt.Sprintf("%s (was %s)", pricing.FormatPrice(p.Current), pricing.FormatPrice(p.Original))
}

func date(t domain.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}

func trimZeros(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
