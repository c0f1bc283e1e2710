package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	decksCmd := &cobra.Command{Use: "decks", Short: "Deck operations"}

	// create
	var name, description string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"name": name}
			if description != "" {
				payload["description"] = description
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/decks", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Deck name (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Deck description")
	_ = createCmd.MarkFlagRequired("name")
	decksCmd.AddCommand(createCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List decks, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/decks", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	decksCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get DECK_ID",
		Short: "Get a deck by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/decks/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	decksCmd.AddCommand(getCmd)

	// update
	var newName, newDescription string
	updateCmd := &cobra.Command{
		Use:   "update DECK_ID",
		Short: "Update a deck's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("name") {
				payload["name"] = newName
			}
			if cmd.Flags().Changed("description") {
				payload["description"] = newDescription
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: pass --name or --description")
			}
			data, err := doPatchJSON(fmt.Sprintf("%s/api/decks/%s", apiFlag, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	updateCmd.Flags().StringVarP(&newName, "name", "n", "", "New deck name")
	updateCmd.Flags().StringVarP(&newDescription, "description", "d", "", "New deck description")
	decksCmd.AddCommand(updateCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete DECK_ID",
		Short: "Delete a deck and all of its flashcards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doDelete(fmt.Sprintf("%s/api/decks/%s", apiFlag, args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	decksCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(decksCmd)
}
