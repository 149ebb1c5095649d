package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"inventoryTracker/models"
)

func renderProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products yet.")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"No.", "Product Name", "Quantity", "Price ($)"})
	for _, p := range products {
		t.AppendRow(table.Row{p.Number, p.Name, p.Quantity, p.PriceString()})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter},
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func renderSummary(w io.Writer, s *models.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"Products", s.Products},
		{"Total quantity", s.TotalQuantity},
		{"Stock value ($)", strconv.FormatFloat(s.TotalValue, 'f', 2, 64)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}
