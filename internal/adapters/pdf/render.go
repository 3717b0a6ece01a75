// Package pdf renders a stored plan as a printable itinerary.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"concierge/internal/app"
	"concierge/internal/domain"
)

const (
	pageWidth = 170.0
	font      = "Helvetica"
)

// Render lays out the itinerary, restaurants, weather and packing list of p
// on A4 pages and returns the document bytes.
func Render(p app.StoredPlan) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	// header bar
	doc.SetFillColor(22, 52, 84)
	doc.Rect(0, 0, 210, 26, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont(font, "B", 18)
	doc.SetXY(20, 7)
	doc.CellFormat(pageWidth, 9, tr("Trip plan: "+p.Run.Booking.Location), "", 1, "L", false, 0, "")
	doc.SetFont(font, "", 10)
	doc.SetX(20)
	doc.CellFormat(pageWidth, 6, tr(subtitle(p.Run)), "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.SetY(34)

	section := func(title string) {
		doc.SetFillColor(22, 52, 84)
		doc.SetTextColor(255, 255, 255)
		doc.SetFont(font, "B", 11)
		doc.CellFormat(pageWidth, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		doc.SetTextColor(0, 0, 0)
		doc.Ln(2)
	}
	line := func(style string, size float64, text string) {
		doc.SetFont(font, style, size)
		doc.MultiCell(pageWidth, 5, tr(text), "", "L", false)
	}

	if p.Output.WeatherSummary != "" {
		section("Weather")
		line("", 10, p.Output.WeatherSummary)
		doc.Ln(3)
	}

	section("Itinerary")
	for _, d := range p.Output.Itinerary {
		line("B", 11, d.Date)
		for _, b := range []struct {
			name  string
			cards []app.ActivityCard
		}{
			{"Morning", d.Blocks.Morning},
			{"Afternoon", d.Blocks.Afternoon},
			{"Evening", d.Blocks.Evening},
		} {
			if len(b.cards) == 0 {
				continue
			}
			line("I", 9, b.name)
			for _, c := range b.cards {
				line("", 10, "  - "+activityLine(c))
			}
		}
		doc.Ln(2)
	}

	if len(p.Output.Restaurants) > 0 {
		section("Restaurants")
		for _, r := range p.Output.Restaurants {
			line("", 10, "  - "+restaurantLine(r))
		}
		doc.Ln(3)
	}

	if len(p.Output.PackingChecklist) > 0 {
		section("Packing checklist")
		for _, item := range p.Output.PackingChecklist {
			line("", 10, "  [ ] "+item)
		}
		doc.Ln(3)
	}

	if p.Output.Notes != "" {
		doc.SetTextColor(110, 110, 110)
		line("I", 8, p.Output.Notes)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func subtitle(r domain.PlanRun) string {
	b := r.Booking
	s := b.StartDate.Format(domain.DateLayout) + " to " + b.EndDate.Format(domain.DateLayout)
	if b.PartyType != "" {
		s += ", " + string(b.PartyType) + " trip"
	}
	return s
}

func activityLine(c app.ActivityCard) string {
	parts := []string{c.Title}
	if c.DurationMinutes > 0 {
		parts = append(parts, fmt.Sprintf("%d min", c.DurationMinutes))
	}
	if c.PriceTier != "" {
		parts = append(parts, c.PriceTier)
	}
	if c.Address != "" {
		parts = append(parts, c.Address)
	}
	return strings.Join(parts, " | ")
}

func restaurantLine(r app.RestaurantCard) string {
	s := r.Title + " (" + r.PriceTier + ")"
	if len(r.Tags) > 0 {
		s += " " + strings.Join(r.Tags, ", ")
	}
	return s
}
