// Package main provides the catalog seeding tool. It loads style and video
// references from a YAML file and upserts them into the configured store.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/Maiuran1404/brandmatch/internal/config"
	"github.com/Maiuran1404/brandmatch/internal/db"
	gormdb "github.com/Maiuran1404/brandmatch/internal/db/gorm"
	"github.com/Maiuran1404/brandmatch/internal/db/sqlite"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// catalogFile is the YAML document shape accepted by the seeder.
type catalogFile struct {
	Styles []styleEntry `yaml:"styles"`
	Videos []videoEntry `yaml:"videos"`
}

type styleEntry struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	ImageURL        string   `yaml:"image_url"`
	DeliverableType string   `yaml:"deliverable_type"`
	StyleAxis       string   `yaml:"style_axis"`
	SubStyle        string   `yaml:"sub_style"`
	SemanticTags    []string `yaml:"semantic_tags"`
	Industries      []string `yaml:"industries"`
	MoodKeywords    []string `yaml:"mood_keywords"`
	FeaturedOrder   int      `yaml:"featured_order"`
	DisplayOrder    int      `yaml:"display_order"`
}

type videoEntry struct {
	ID            string   `yaml:"id"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	VideoURL      string   `yaml:"video_url"`
	ThumbnailURL  string   `yaml:"thumbnail_url"`
	StyleAxis     string   `yaml:"style_axis"`
	Intents       []string `yaml:"intents"`
	Platforms     []string `yaml:"platforms"`
	Topics        []string `yaml:"topics"`
	Industries    []string `yaml:"industries"`
	MoodKeywords  []string `yaml:"mood_keywords"`
	FeaturedOrder int      `yaml:"featured_order"`
	DisplayOrder  int      `yaml:"display_order"`
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var path string
	flag.StringVar(&path, "file", "catalog.yaml", "path to the catalog YAML file")
	flag.Parse()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to read catalog file")
	}

	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to parse catalog file")
	}

	if err := config.EnsureAll(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure data directory")
	}

	store, err := openStore(config.Get())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, e := range catalog.Styles {
		ref := &models.StyleReference{
			ID:              e.ID,
			Name:            e.Name,
			Description:     e.Description,
			ImageURL:        e.ImageURL,
			DeliverableType: models.DeliverableType(e.DeliverableType),
			StyleAxis:       e.StyleAxis,
			SubStyle:        e.SubStyle,
			SemanticTags:    e.SemanticTags,
			Industries:      e.Industries,
			MoodKeywords:    e.MoodKeywords,
			FeaturedOrder:   e.FeaturedOrder,
			DisplayOrder:    e.DisplayOrder,
			IsActive:        true,
		}
		if err := store.UpsertStyleReference(ctx, ref); err != nil {
			log.Fatal().Err(err).Str("name", e.Name).Msg("Failed to upsert style")
		}
	}

	for _, e := range catalog.Videos {
		ref := &models.VideoReference{
			ID:            e.ID,
			Title:         e.Title,
			Description:   e.Description,
			VideoURL:      e.VideoURL,
			ThumbnailURL:  e.ThumbnailURL,
			StyleAxis:     e.StyleAxis,
			Intents:       e.Intents,
			Platforms:     e.Platforms,
			Topics:        e.Topics,
			Industries:    e.Industries,
			MoodKeywords:  e.MoodKeywords,
			FeaturedOrder: e.FeaturedOrder,
			DisplayOrder:  e.DisplayOrder,
			IsActive:      true,
		}
		if err := store.UpsertVideoReference(ctx, ref); err != nil {
			log.Fatal().Err(err).Str("title", e.Title).Msg("Failed to upsert video")
		}
	}

	log.Info().
		Int("styles", len(catalog.Styles)).
		Int("videos", len(catalog.Videos)).
		Msg("Catalog seeded")
}

func openStore(cfg *config.Config) (db.Store, error) {
	if cfg.PostgresDSN != "" {
		return gormdb.NewStore(gormdb.Config{DSN: cfg.PostgresDSN, MaxConns: cfg.MaxConns})
	}
	return sqlite.NewStore(sqlite.StoreConfig{Path: cfg.DBPath, MaxConns: cfg.MaxConns})
}
