package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordleplus/internal/httpserver"
	"github.com/robalobadob/wordleplus/internal/words"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference word-authority HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := words.Load(cfg.WordsFile)
		if err != nil {
			return err
		}
		srv := httpserver.New(list, httpserver.Options{
			ClientOrigin: cfg.ClientOrigin,
			DailySalt:    cfg.DailySalt,
		})
		log.Info().Str("port", cfg.Port).Interface("words", list.Stats()).Msg("starting word authority")
		return srv.Start(":" + cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
