package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Flag names
const (
	flagName        = "name"
	flagDescription = "description"
	flagCategoryID  = "category-id"
	flagPage        = "page"
	flagID          = "id"
)

// GetProjectsCmd returns the projects command group
func GetProjectsCmd() *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := cmd.Flags().GetString(flagName)
			if err != nil {
				return fmt.Errorf("error getting name flag: %w", err)
			}
			description, err := cmd.Flags().GetString(flagDescription)
			if err != nil {
				return fmt.Errorf("error getting description flag: %w", err)
			}
			categoryID, err := cmd.Flags().GetUint(flagCategoryID)
			if err != nil {
				return fmt.Errorf("error getting category-id flag: %w", err)
			}

			var category *uint
			if categoryID > 0 {
				category = &categoryID
			}

			project, err := apiClient.CreateProject(cmd.Context(), name, description, category)
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}
			return printJSON(project)
		},
	}
	createCmd.Flags().StringP(flagName, "n", "", "Project name")
	createCmd.Flags().StringP(flagDescription, "d", "", "Project description")
	createCmd.Flags().Uint(flagCategoryID, 0, "Category ID")
	if err := createCmd.MarkFlagRequired(flagName); err != nil {
		panic(fmt.Errorf("failed to mark name flag as required for create project command: %w", err))
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := cmd.Flags().GetInt(flagPage)
			if err != nil {
				return fmt.Errorf("error getting page flag: %w", err)
			}
			projects, err := apiClient.ListProjects(cmd.Context(), page)
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}
			return printJSON(projects)
		},
	}
	listCmd.Flags().IntP(flagPage, "p", 1, "Page number for pagination")

	treeCmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a project's task tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := cmd.Flags().GetUint(flagID)
			if err != nil {
				return fmt.Errorf("error getting id flag: %w", err)
			}
			tree, err := apiClient.GetProjectTree(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get project tree: %w", err)
			}
			return printJSON(tree)
		},
	}
	treeCmd.Flags().Uint(flagID, 0, "Project ID")
	if err := treeCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for project tree command: %w", err))
	}

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project and all of its tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := cmd.Flags().GetUint(flagID)
			if err != nil {
				return fmt.Errorf("error getting id flag: %w", err)
			}
			if err := apiClient.DeleteProject(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}
			fmt.Printf("Deleted project %d\n", id)
			return nil
		},
	}
	deleteCmd.Flags().Uint(flagID, 0, "Project ID")
	if err := deleteCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for delete project command: %w", err))
	}

	projectsCmd.AddCommand(createCmd, listCmd, treeCmd, deleteCmd)
	return projectsCmd
}

// printJSON pretty-prints a value as indented JSON
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
