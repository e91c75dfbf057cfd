package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordleplus/internal/authority"
	"github.com/robalobadob/wordleplus/internal/dictionary"
	"github.com/robalobadob/wordleplus/internal/game"
	"github.com/robalobadob/wordleplus/internal/words"
)

var playLength int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Resume or start a game and read guesses from stdin",
	Long: `Resume the saved game for the chosen word length, or fetch a new word
from the word authority when none is saved. Type a guess per line,
":new" to abandon the current game, ":quit" to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		length := playLength
		if length == 0 {
			length = cfg.DefaultLength
		}
		if !words.ValidLength(length) {
			return fmt.Errorf("length must be between %d and %d", words.MinLength, words.MaxLength)
		}

		db, sessions, learned, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		client := authority.New(cfg.AuthorityURL, authority.WithTimeout(cfg.HTTPTimeout))
		s := game.New(cmd.Context(), length, client, sessions, game.WithMaxAttempts(cfg.MaxAttempts))

		p := &player{
			session: s,
			learned: learned,
			in:      bufio.NewScanner(cmd.InOrStdin()),
			out:     cmd.OutOrStdout(),
		}
		return p.run(cmd)
	},
}

func init() {
	playCmd.Flags().IntVarP(&playLength, "length", "l", 0, "word length (defaults to WORDLE_DEFAULT_LENGTH)")
	rootCmd.AddCommand(playCmd)
}

// player drives one session from line-oriented input.
type player struct {
	session *game.Session
	learned dictionary.Store
	in      *bufio.Scanner
	out     io.Writer
}

func (p *player) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if !p.session.IsConfigured() {
		if err := p.newGame(cmd); err != nil {
			return err
		}
	}
	fmt.Fprintln(p.out, renderBoard(p.session))
	if p.over() {
		p.finish(cmd)
	}

	for p.prompt() {
		line := strings.ToLower(strings.TrimSpace(p.in.Text()))
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":new":
			if err := p.newGame(cmd); err != nil {
				return err
			}
			fmt.Fprintln(p.out, renderBoard(p.session))
			continue
		}

		if p.over() {
			fmt.Fprintln(p.out, dimStyle.Render(`game over, type ":new" or ":quit"`))
			continue
		}
		if utf8.RuneCountInString(line) != p.session.WordLength() {
			fmt.Fprintf(p.out, "guess must be %d letters\n", p.session.WordLength())
			continue
		}

		ok, err := p.session.CheckAttempt(ctx, line)
		if err != nil {
			fmt.Fprintf(p.out, "could not check word: %v\n", err)
			continue
		}
		if !ok {
			fmt.Fprintln(p.out, "not in word list")
			continue
		}

		p.session.MakeGuess(line)
		p.save(cmd)
		fmt.Fprintln(p.out, renderBoard(p.session))
		if p.over() {
			p.finish(cmd)
		}
	}
	return p.in.Err()
}

// prompt prints the input marker and reads the next line.
func (p *player) prompt() bool {
	fmt.Fprint(p.out, "> ")
	return p.in.Scan()
}

func (p *player) over() bool {
	return p.session.HasWon() || p.session.HasLost()
}

// newGame fetches a fresh word and persists the reset session.
func (p *player) newGame(cmd *cobra.Command) error {
	if err := p.session.StartNewGame(cmd.Context()); err != nil {
		if errors.Is(err, game.ErrSuperseded) {
			return nil
		}
		return fmt.Errorf("start new game: %w", err)
	}
	p.save(cmd)
	return nil
}

func (p *player) save(cmd *cobra.Command) {
	if err := p.session.SaveCurrentState(cmd.Context()); err != nil {
		log.Warn().Err(err).Msg("save session")
	}
}

// finish announces the result and offers to keep the word.
func (p *player) finish(cmd *cobra.Command) {
	st := p.session.Snapshot()
	if st.HasWon {
		fmt.Fprintf(p.out, "You won in %d/%d!\n", len(st.Guesses), st.MaxAttempts)
	} else {
		fmt.Fprintf(p.out, "Out of attempts. The word was %s.\n", strings.ToUpper(st.Target))
	}
	if st.Definition != "" {
		fmt.Fprintln(p.out, dimStyle.Render(st.Definition))
	}

	fmt.Fprint(p.out, "Save this word to your dictionary? [y/N] ")
	if !p.in.Scan() {
		return
	}
	if a := strings.ToLower(strings.TrimSpace(p.in.Text())); a != "y" && a != "yes" {
		return
	}
	if _, err := p.learned.Create(cmd.Context(), st.Target, st.Definition); err != nil {
		fmt.Fprintf(p.out, "could not save word: %v\n", err)
		return
	}
	fmt.Fprintln(p.out, "Saved.")
}
