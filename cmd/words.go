package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordleplus/internal/dictionary"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage learned words",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learned words sorted by word",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, learned, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		list, err := learned.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No learned words yet.")
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tWORD\tDEFINITION")
		for _, w := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", w.ID, strings.ToUpper(w.Word), w.Definition)
		}
		return tw.Flush()
	},
}

var wordsAddCmd = &cobra.Command{
	Use:   "add <word> [definition...]",
	Short: "Save a word to the dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, learned, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		w, err := learned.Create(cmd.Context(), strings.ToLower(args[0]), strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s).\n", strings.ToUpper(w.Word), w.ID)
		return nil
	},
}

var wordsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a learned word by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, learned, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := learned.Delete(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, dictionary.ErrNotFound) {
				return fmt.Errorf("no learned word with id %s", args[0])
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
		return nil
	},
}

func init() {
	wordsCmd.AddCommand(wordsListCmd, wordsAddCmd, wordsDeleteCmd)
	rootCmd.AddCommand(wordsCmd)
}
