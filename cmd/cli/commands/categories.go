package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

const flagColor = "color"

// GetCategoriesCmd returns the categories command group
func GetCategoriesCmd() *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := cmd.Flags().GetString(flagName)
			if err != nil {
				return fmt.Errorf("error getting name flag: %w", err)
			}
			color, err := cmd.Flags().GetString(flagColor)
			if err != nil {
				return fmt.Errorf("error getting color flag: %w", err)
			}

			category, err := apiClient.CreateCategory(cmd.Context(), name, color)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}
			return printJSON(category)
		},
	}
	createCmd.Flags().StringP(flagName, "n", "", "Category name")
	createCmd.Flags().String(flagColor, "", "Display color (e.g. #ff8800)")
	if err := createCmd.MarkFlagRequired(flagName); err != nil {
		panic(fmt.Errorf("failed to mark name flag as required for create category command: %w", err))
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := apiClient.ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}
			return printJSON(categories)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := cmd.Flags().GetUint(flagID)
			if err != nil {
				return fmt.Errorf("error getting id flag: %w", err)
			}
			if err := apiClient.DeleteCategory(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}
			fmt.Printf("Deleted category %d\n", id)
			return nil
		},
	}
	deleteCmd.Flags().Uint(flagID, 0, "Category ID")
	if err := deleteCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for delete category command: %w", err))
	}

	categoriesCmd.AddCommand(createCmd, listCmd, deleteCmd)
	return categoriesCmd
}
