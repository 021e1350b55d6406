package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pathfinder/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Scholarship catalog commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import <in.xlsx> <out.json>",
		Short: "Convert an XLSX sheet into a catalog JSON feed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.ImportXLSX(args[0])
			if err != nil {
				return err
			}
			if err := writeCatalogJSON(c, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d scholarships into %s\n", c.Len(), args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <in.json> <out.xlsx>",
		Short: "Write a catalog JSON feed out as an XLSX sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := c.ExportXLSX(args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d scholarships to %s\n", c.Len(), args[1])
			return nil
		},
	})

	return cmd
}

func writeCatalogJSON(c *catalog.Catalog, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return c.WriteJSON(f)
}
