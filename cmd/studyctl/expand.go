package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var concept, content string
	expandCmd := &cobra.Command{
		Use:   "expand",
		Short: "Suggest related concepts for a flashcard topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"concept":          concept,
				"flashcardContent": content,
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/expand", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	expandCmd.Flags().StringVarP(&concept, "concept", "c", "", "Concept to expand (required)")
	expandCmd.Flags().StringVarP(&content, "content", "t", "", "Flashcard content the concept came from")
	_ = expandCmd.MarkFlagRequired("concept")
	rootCmd.AddCommand(expandCmd)
}
