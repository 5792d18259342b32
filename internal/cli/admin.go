package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"pet-center-client/internal/api"
)

// Admin console commands. Each panel is an independent request wrapper;
// the server is the authority on every rule, the console only refuses
// obviously bad input before sending it.

func (s *Shell) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		s.printAdminHelp()
		return nil
	}

	switch args[0] {
	case "apps":
		apps, err := s.console.ListApplications(ctx)
		if err != nil {
			return err
		}
		renderApplications(s.out, apps)
		return nil
	case "approve":
		id, err := requiredID(args[1:], "usage: admin approve <application>")
		if err != nil {
			return err
		}
		if err := s.console.ApproveApplication(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Application approved.")
		return nil
	case "reject":
		id, err := requiredID(args[1:], "usage: admin reject <application> [reason...]")
		if err != nil {
			return err
		}
		if err := s.console.RejectApplication(ctx, id, joinRest(args, 2)); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Application rejected.")
		return nil
	case "donors":
		apps, err := s.console.ListDonorApplications(ctx)
		if err != nil {
			return err
		}
		renderDonorApplications(s.out, apps)
		return nil
	case "accept-donor":
		if len(args) != 3 {
			return errors.New("usage: admin accept-donor <application> <shelter>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.New("usage: admin accept-donor <application> <shelter>")
		}
		shelterID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return errors.New("usage: admin accept-donor <application> <shelter>")
		}
		if err := s.console.AcceptDonorApplication(ctx, id, shelterID); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Donor application accepted.")
		return nil
	case "vet":
		if len(args) < 3 {
			return errors.New("usage: admin vet <pet> <date> [remarks...]")
		}
		petID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.New("usage: admin vet <pet> <date> [remarks...]")
		}
		if err := s.console.AddVetRecord(ctx, &api.VetRecordRequest{
			PetID:       petID,
			CheckupDate: args[2],
			Remarks:     joinRest(args, 3),
		}); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Vet record added.")
		return nil
	case "caretakers":
		caretakers, err := s.console.ListCaretakers(ctx)
		if err != nil {
			return err
		}
		renderCaretakers(s.out, caretakers)
		return nil
	case "add-shelter":
		if len(args) < 2 {
			return errors.New("usage: admin add-shelter <name> [location...]")
		}
		shelter, err := s.console.CreateShelter(ctx, &api.ShelterRequest{
			Name:     args[1],
			Location: joinRest(args, 2),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Shelter #%d created.\n", shelter.ID)
		return nil
	case "del-shelter":
		id, err := requiredID(args[1:], "usage: admin del-shelter <id>")
		if err != nil {
			return err
		}
		if err := s.console.DeleteShelter(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Shelter deleted.")
		return nil
	case "add-pet":
		if len(args) < 5 {
			return errors.New("usage: admin add-pet <shelter> <species> <price> <name...>")
		}
		shelterID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.New("usage: admin add-pet <shelter> <species> <price> <name...>")
		}
		price, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return errors.New("usage: admin add-pet <shelter> <species> <price> <name...>")
		}
		pet, err := s.console.CreatePet(ctx, &api.PetRequest{
			ShelterID: shelterID,
			Species:   args[2],
			Price:     price,
			Name:      joinRest(args, 4),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Pet #%d created.\n", pet.ID)
		return nil
	case "del-pet":
		id, err := requiredID(args[1:], "usage: admin del-pet <id>")
		if err != nil {
			return err
		}
		if err := s.console.DeletePet(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Pet deleted.")
		return nil
	case "add-caretaker":
		if len(args) < 3 {
			return errors.New("usage: admin add-caretaker <shelter> <name...>")
		}
		shelterID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.New("usage: admin add-caretaker <shelter> <name...>")
		}
		caretaker, err := s.console.CreateCaretaker(ctx, &api.CaretakerRequest{
			ShelterID: shelterID,
			Name:      joinRest(args, 2),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Caretaker #%d created.\n", caretaker.ID)
		return nil
	case "del-caretaker":
		id, err := requiredID(args[1:], "usage: admin del-caretaker <id>")
		if err != nil {
			return err
		}
		if err := s.console.DeleteCaretaker(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Caretaker deleted.")
		return nil
	case "add-item":
		if len(args) < 5 {
			return errors.New("usage: admin add-item <shelter> <price> <stock> <name...>")
		}
		shelterID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.New("usage: admin add-item <shelter> <price> <stock> <name...>")
		}
		price, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return errors.New("usage: admin add-item <shelter> <price> <stock> <name...>")
		}
		stock, err := strconv.Atoi(args[3])
		if err != nil {
			return errors.New("usage: admin add-item <shelter> <price> <stock> <name...>")
		}
		item, err := s.console.CreateShopItem(ctx, &api.ShopItemRequest{
			ShelterID:     shelterID,
			Price:         price,
			StockQuantity: stock,
			Name:          joinRest(args, 4),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Shop item #%d created.\n", item.ID)
		return nil
	case "set-item":
		// Restock or reprice an existing item in place.
		if len(args) < 6 {
			return errors.New("usage: admin set-item <id> <shelter> <price> <stock> <name...>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.New("usage: admin set-item <id> <shelter> <price> <stock> <name...>")
		}
		shelterID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return errors.New("usage: admin set-item <id> <shelter> <price> <stock> <name...>")
		}
		price, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return errors.New("usage: admin set-item <id> <shelter> <price> <stock> <name...>")
		}
		stock, err := strconv.Atoi(args[4])
		if err != nil {
			return errors.New("usage: admin set-item <id> <shelter> <price> <stock> <name...>")
		}
		if err := s.console.UpdateShopItem(ctx, id, &api.ShopItemRequest{
			ShelterID:     shelterID,
			Price:         price,
			StockQuantity: stock,
			Name:          joinRest(args, 5),
		}); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Shop item updated.")
		return nil
	case "del-item":
		id, err := requiredID(args[1:], "usage: admin del-item <id>")
		if err != nil {
			return err
		}
		if err := s.console.DeleteShopItem(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Shop item deleted.")
		return nil
	default:
		return fmt.Errorf("unknown admin subcommand %q (try admin help)", args[0])
	}
}

func (s *Shell) printAdminHelp() {
	fmt.Fprint(s.out, `Admin commands:
  admin apps | admin approve <id> | admin reject <id> [reason...]
  admin donors | admin accept-donor <id> <shelter>
  admin vet <pet> <date> [remarks...]
  admin caretakers
  admin add-shelter <name> [location...] | admin del-shelter <id>
  admin add-pet <shelter> <species> <price> <name...> | admin del-pet <id>
  admin add-caretaker <shelter> <name...> | admin del-caretaker <id>
  admin add-item <shelter> <price> <stock> <name...>
  admin set-item <id> <shelter> <price> <stock> <name...>
  admin del-item <id>
`)
}
