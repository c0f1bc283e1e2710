package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studysmarter/studysmarter/internal/model"
	"github.com/studysmarter/studysmarter/internal/practice"
)

func init() {
	var shuffle bool
	practiceCmd := &cobra.Command{
		Use:   "practice DECK_ID",
		Short: "Practice a deck's flashcards interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/decks/%s/flashcards", apiFlag, args[0])
			data, err := doGet(url)
			if err != nil {
				return err
			}
			var result struct {
				Flashcards []model.Flashcard `json:"flashcards"`
			}
			if err := json.Unmarshal(data, &result); err != nil {
				return err
			}
			if len(result.Flashcards) == 0 {
				_, _ = fmt.Fprintln(os.Stdout, "deck has no flashcards")
				return nil
			}

			session := practice.NewSession(result.Flashcards)
			if shuffle {
				session.ToggleShuffle()
			}
			return runPractice(session, os.Stdin, os.Stdout)
		},
	}
	practiceCmd.Flags().BoolVarP(&shuffle, "shuffle", "s", false, "Shuffle card order")
	rootCmd.AddCommand(practiceCmd)
}

// runPractice drives a session over a line-based prompt until the cards run
// out or the reader closes.
func runPractice(session *practice.Session, in io.Reader, out io.Writer) error {
	printCard := func() {
		card, ok := session.Current()
		if !ok {
			return
		}
		_, _ = fmt.Fprintf(out, "\n[%d/%d] Q: %s\n", session.Position(), session.Len(), card.Question)
		if session.Revealed() {
			_, _ = fmt.Fprintf(out, "A: %s\n", card.Answer)
		}
		_, _ = fmt.Fprint(out, "(r)eveal (n)ext (p)rev (s)huffle (q)uit > ")
	}

	printCard()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "r", "reveal":
			session.Reveal()
		case "n", "next":
			if !session.Next() {
				_, _ = fmt.Fprintln(out, "\nend of deck")
				return nil
			}
		case "p", "prev":
			session.Prev()
		case "s", "shuffle":
			session.ToggleShuffle()
		case "q", "quit":
			return nil
		}
		printCard()
	}
	return scanner.Err()
}
