package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cardsCmd := &cobra.Command{Use: "cards", Short: "Flashcard operations"}

	// add
	var deckID, question, answer string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a flashcard to a deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"question": question, "answer": answer}
			url := fmt.Sprintf("%s/api/decks/%s/flashcards", apiFlag, deckID)
			data, err := doPostJSON(url, payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&deckID, "deck", "d", "", "Deck ID (required)")
	addCmd.Flags().StringVarP(&question, "question", "q", "", "Question (required)")
	addCmd.Flags().StringVarP(&answer, "answer", "w", "", "Answer (required)")
	_ = addCmd.MarkFlagRequired("deck")
	_ = addCmd.MarkFlagRequired("question")
	_ = addCmd.MarkFlagRequired("answer")
	cardsCmd.AddCommand(addCmd)

	// list
	var listDeckID string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a deck's flashcards",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/decks/%s/flashcards", apiFlag, listDeckID)
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&listDeckID, "deck", "d", "", "Deck ID (required)")
	_ = listCmd.MarkFlagRequired("deck")
	cardsCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get FLASHCARD_ID",
		Short: "Get a flashcard by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/flashcards/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	cardsCmd.AddCommand(getCmd)

	// update
	var newQuestion, newAnswer string
	updateCmd := &cobra.Command{
		Use:   "update FLASHCARD_ID",
		Short: "Update a flashcard's question or answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("question") {
				payload["question"] = newQuestion
			}
			if cmd.Flags().Changed("answer") {
				payload["answer"] = newAnswer
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: pass --question or --answer")
			}
			data, err := doPatchJSON(fmt.Sprintf("%s/api/flashcards/%s", apiFlag, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	updateCmd.Flags().StringVarP(&newQuestion, "question", "q", "", "New question")
	updateCmd.Flags().StringVarP(&newAnswer, "answer", "w", "", "New answer")
	cardsCmd.AddCommand(updateCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete FLASHCARD_ID",
		Short: "Delete a flashcard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doDelete(fmt.Sprintf("%s/api/flashcards/%s", apiFlag, args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	cardsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(cardsCmd)
}
