// Package main seeds the word dictionary. Seeding is an administrative
// operation, kept out of the server's hot path; re-running it is safe
// because already-present words are skipped.
package main

import (
	"bufio"
	"context"
	_ "embed"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"monad-wordle/internal/config"
	"monad-wordle/internal/game/wordle"
	"monad-wordle/internal/pkg/db"
	"monad-wordle/internal/repository"
)

//go:embed words.txt
var defaultWords string

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	wordFile := flag.String("file", "", "path to a word list, one word per line (default: bundled list)")
	configPath := flag.String("config", "config", "path to the config directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	words, err := loadWords(*wordFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *wordFile).Msg("Failed to read word list")
	}
	if len(words) == 0 {
		log.Fatal().Msg("Word list contains no valid five-letter words")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := repository.Migrate(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	wordRepo := repository.NewWordRepository(dbPool.Pool)
	inserted, err := wordRepo.Seed(ctx, words)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed words")
	}

	total, err := wordRepo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to count words")
	}

	log.Info().
		Int("candidates", len(words)).
		Int("inserted", inserted).
		Int("total", total).
		Msg("Dictionary seeded")
}

// loadWords reads one word per line from path, or from the bundled
// list when path is empty, keeping only well-formed five-letter words.
func loadWords(path string) ([]string, error) {
	if path == "" {
		return filterWords(strings.NewReader(defaultWords))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return filterWords(f)
}

func filterWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := wordle.Normalize(sc.Text())
		if wordle.IsWord(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}
