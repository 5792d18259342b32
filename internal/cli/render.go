package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pet-center-client/internal/cart"
	"pet-center-client/internal/models"
)

// Table rendering for the catalog and account views. Every view is a
// stateless query+render cycle; nothing here is cached.

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func renderShelters(out io.Writer, shelters []models.Shelter) {
	if len(shelters) == 0 {
		fmt.Fprintln(out, "No shelters found.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tCONTACT")
	for _, s := range shelters {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.Location, s.Contact)
	}
	w.Flush()
}

func renderPets(out io.Writer, pets []models.Pet) {
	if len(pets) == 0 {
		fmt.Fprintln(out, "No pets available.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tSPECIES\tBREED\tAGE\tPRICE\tSHELTER")
	for _, p := range pets {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t$%.2f\t%s\n",
			p.ID, p.Name, p.Species, p.Breed, p.Age, p.Price, p.ShelterName)
	}
	w.Flush()
}

func renderPetDetail(out io.Writer, pet *models.Pet) {
	fmt.Fprintf(out, "%s (#%d)\n", pet.Name, pet.ID)
	fmt.Fprintf(out, "  Species:     %s\n", pet.Species)
	if pet.Breed != "" {
		fmt.Fprintf(out, "  Breed:       %s\n", pet.Breed)
	}
	fmt.Fprintf(out, "  Age:         %d\n", pet.Age)
	fmt.Fprintf(out, "  Price:       $%.2f\n", pet.Price)
	fmt.Fprintf(out, "  Shelter:     %s\n", pet.ShelterName)
	if pet.CaretakerName != "" {
		fmt.Fprintf(out, "  Caretaker:   %s\n", pet.CaretakerName)
	}
	fmt.Fprintf(out, "  Eligibility: %s\n", pet.Eligibility)
	if len(pet.VetRecords) > 0 {
		fmt.Fprintln(out, "  Vet records:")
		for _, rec := range pet.VetRecords {
			line := "    " + rec.CheckupDate
			if rec.Remarks != "" {
				line += " - " + rec.Remarks
			}
			if rec.Treatment != "" {
				line += " (" + rec.Treatment + ")"
			}
			fmt.Fprintln(out, line)
		}
	}
}

func renderShopItems(out io.Writer, items []models.ShopItem) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No items in stock.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tSHELTER")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t$%.2f\t%d\t%s\n",
			item.ID, item.Name, item.Price, item.StockQuantity, item.ShelterName)
	}
	w.Flush()
}

func renderCart(out io.Writer, c *cart.Cart) {
	lines := c.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(out, "Your cart is empty.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ITEM\tNAME\tQTY\tUNIT\tLINE TOTAL")
	for _, line := range lines {
		fmt.Fprintf(w, "%d\t%s\t%d\t$%.2f\t$%.2f\n",
			line.ItemID, line.Name, line.Quantity, line.UnitPrice,
			line.UnitPrice*float64(line.Quantity))
	}
	w.Flush()
	fmt.Fprintf(out, "Estimated total: $%.2f (final amount is set at checkout)\n", c.Total())
}

func renderOrders(out io.Writer, orders []models.ShopOrder) {
	if len(orders) == 0 {
		fmt.Fprintln(out, "No orders yet.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ORDER\tDATE\tITEM\tQTY\tTOTAL\tSHELTER")
	for _, o := range orders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t$%.2f\t%s\n",
			o.ID, o.OrderDate, o.ItemName, o.Quantity, o.TotalPrice, o.ShelterName)
	}
	w.Flush()
}

func renderApplications(out io.Writer, apps []models.AdoptionApplication) {
	if len(apps) == 0 {
		fmt.Fprintln(out, "No applications.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tPET\tSTATUS\tDATE\tNOTES")
	for _, a := range apps {
		notes := a.Reason
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.PetName, a.Status, a.Date, notes)
	}
	w.Flush()
}

func renderDonorApplications(out io.Writer, apps []models.DonorApplication) {
	if len(apps) == 0 {
		fmt.Fprintln(out, "No donor applications.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tPET\tSPECIES\tAGE\tHEALTH\tSTATUS")
	for _, a := range apps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			a.ID, a.PetName, a.Species, a.Age, a.HealthStatus, a.Status)
	}
	w.Flush()
}

func renderCaretakers(out io.Writer, caretakers []models.Caretaker) {
	if len(caretakers) == 0 {
		fmt.Fprintln(out, "No caretakers.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tSHELTER\tCONTACT")
	for _, ct := range caretakers {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", ct.ID, ct.Name, ct.ShelterID, ct.Contact)
	}
	w.Flush()
}

func renderUser(out io.Writer, user *models.User) {
	role := "shopper"
	if user.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(out, "Logged in as %s (%s), wallet $%.2f\n", user.Username, role, user.Wallet)
}

func joinRest(fields []string, from int) string {
	if from >= len(fields) {
		return ""
	}
	return strings.Join(fields[from:], " ")
}
