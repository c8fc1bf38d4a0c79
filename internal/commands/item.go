package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/smartcart-dev/smartcart/internal/envelope"
	"github.com/smartcart-dev/smartcart/internal/importer"
	"github.com/smartcart-dev/smartcart/internal/model"
)

func newItemCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage items in the active envelope",
	}
	cmd.AddCommand(newItemAddCommand(dataDir))
	cmd.AddCommand(newItemListCommand(dataDir))
	cmd.AddCommand(newItemDeleteCommand(dataDir))
	cmd.AddCommand(newItemUpdateCommand(dataDir))
	cmd.AddCommand(newItemImportCommand(dataDir))
	return cmd
}

func newItemAddCommand(dataDir *string) *cobra.Command {
	var category string
	var essential bool

	cmd := &cobra.Command{
		Use:   "add <name> <price>",
		Short: "Add an item to the active envelope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing price %q: %w", args[1], err)
			}

			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}

			item := model.Item{
				ID:        uuid.NewString(),
				Name:      args[0],
				Category:  category,
				Price:     price,
				Essential: essential,
			}
			if _, err := sess.svc.AddItem(item); err != nil {
				return err
			}
			if err := sess.commit("item-add", sess.svc.Active(), item.ID, item.Name); err != nil {
				return err
			}

			fmt.Printf("Added %s (%s) to %s\n", item.Name, sess.money(item.Price), sess.svc.Active())
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "General",
		"item category (e.g. "+strings.Join(model.DefaultCategories, ", ")+")")
	cmd.Flags().BoolVar(&essential, "essential", false, "mark the item essential")

	return cmd
}

func newItemListCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items in the active envelope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}

			snap := sess.svc.Snapshot()
			env := snap.Envelopes[snap.Active]
			if len(env.Items) == 0 {
				fmt.Printf("No items in %s\n", snap.Active)
				return nil
			}

			for _, it := range env.Items {
				essential := ""
				if it.Essential {
					essential = " [essential]"
				}
				fmt.Printf("%s  %-20s %-12s %s%s\n", it.ID, it.Name, it.Category, sess.money(it.Price), essential)
			}
			fmt.Printf("Total: %s\n", sess.money(env.Spent()))
			return nil
		},
	}
}

func newItemDeleteCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item from the active envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}
			if _, err := sess.svc.DeleteItem(args[0]); err != nil {
				return err
			}
			if err := sess.commit("item-delete", sess.svc.Active(), args[0], ""); err != nil {
				return err
			}

			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func newItemUpdateCommand(dataDir *string) *cobra.Command {
	var name string
	var category string
	var price string
	var essential bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an item in the active envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch envelope.ItemPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("price") {
				p, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("parsing price %q: %w", price, err)
				}
				patch.Price = &p
			}
			if cmd.Flags().Changed("essential") {
				patch.Essential = &essential
			}

			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}
			if _, err := sess.svc.UpdateItem(args[0], patch); err != nil {
				return err
			}
			if err := sess.commit("item-update", sess.svc.Active(), args[0], ""); err != nil {
				return err
			}

			fmt.Printf("Updated %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new item name")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&price, "price", "", "new price")
	cmd.Flags().BoolVar(&essential, "essential", false, "essential flag")

	return cmd
}

func newItemImportCommand(dataDir *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk-add items from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			items, err := parser.Parse(f)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("Nothing to import")
				return nil
			}

			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}

			// Dry-run the whole batch against a scratch copy first, so
			// a mid-file lock rejection cannot leave a half-applied
			// import behind.
			scratch, err := envelope.Restore(sess.svc.Snapshot())
			if err != nil {
				return err
			}
			for i := range items {
				items[i].ID = uuid.NewString()
				if _, err := scratch.AddItem(items[i]); err != nil {
					return fmt.Errorf("row %d (%s): %w", i+1, items[i].Name, err)
				}
			}
			for _, item := range items {
				if _, err := sess.svc.AddItem(item); err != nil {
					return err
				}
			}

			if err := sess.commit("item-import", sess.svc.Active(), "", fmt.Sprintf("%d items from %s", len(items), args[0])); err != nil {
				return err
			}

			fmt.Printf("Imported %d items into %s\n", len(items), sess.svc.Active())
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "items", "import format")

	return cmd
}
