package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strings"

	"go-jobportal-backend/config"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/repository/postgres"
	"go-jobportal-backend/pkg/database"
	"go-jobportal-backend/pkg/logger"
)

const batchSize = 2000

// skillimport seeds the skill directory from an ESCO skills.csv export.
// Existing normalized names are skipped, so reruns are safe.
func main() {
	var (
		path  = flag.String("path", "seed/esco/skills.csv", "Path to ESCO skills.csv")
		limit = flag.Int("limit", 0, "Optional row limit (0 = no limit)")
	)
	flag.Parse()

	logger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	f, err := os.Open(*path)
	if err != nil {
		logger.Log.Error("File not found", "path", *path, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	repo := postgres.NewSkillDirectoryRepository(dbPool)
	ctx := context.Background()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		logger.Log.Error("Failed to read CSV header", "error", err)
		os.Exit(1)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToUpper(strings.TrimSpace(name))] = i
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		batch     []domain.SkillImportRow
		processed int64
		rows      int
	)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		inserted, err := repo.BulkImport(ctx, batch)
		if err != nil {
			logger.Log.Error("Batch import failed", "error", err)
			os.Exit(1)
		}
		processed += inserted
		batch = batch[:0]
		logger.Log.Info("Imported rows", "total", processed)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Log.Error("Failed to read CSV row", "error", err)
			os.Exit(1)
		}
		rows++

		name := field(record, "PREFERREDLABEL")
		if name == "" || domain.NormalizeSkillName(name) == "" {
			continue
		}

		var altLabels []string
		for _, label := range strings.Split(field(record, "ALTLABELS"), "\n") {
			if label = strings.TrimSpace(label); label != "" {
				altLabels = append(altLabels, label)
			}
		}

		batch = append(batch, domain.SkillImportRow{
			Name:      name,
			AltLabels: altLabels,
			SourceURI: field(record, "ORIGINURI"),
		})
		if len(batch) >= batchSize {
			flush()
		}
		if *limit > 0 && rows >= *limit {
			break
		}
	}
	flush()

	logger.Log.Info("Import complete", "processed", processed)
}
