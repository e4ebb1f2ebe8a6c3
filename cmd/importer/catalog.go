package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
	"gopkg.in/yaml.v3"
)

//go:generate mockgen -source=catalog.go -destination=catalog_mock.go -package=main

// CatalogImporter adds catalog entries that are not stored yet.
type CatalogImporter interface {
	ImportIngredients(ctx context.Context, items []models.Ingredient) (int, error)
	ImportTags(ctx context.Context, tags []models.Tag) (int, error)
}

var errUnsupportedFormat = errors.New("unsupported file format")

// readIngredientsCSV reads name,measurement_unit rows. The first row is a header.
func readIngredientsCSV(r io.Reader) ([]models.Ingredient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var items []models.Ingredient
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
		items = append(items, models.Ingredient{
			Name:            strings.TrimSpace(row[0]),
			MeasurementUnit: strings.TrimSpace(row[1]),
		})
	}
}

func readIngredientsJSON(r io.Reader) ([]models.Ingredient, error) {
	var items []models.Ingredient
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func readTagsYAML(r io.Reader) ([]models.Tag, error) {
	var tags []models.Tag
	if err := yaml.NewDecoder(r).Decode(&tags); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return tags, nil
}

// loadIngredients reads an ingredient file, picking the format by extension.
func loadIngredients(path string) ([]models.Ingredient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readIngredientsCSV(f)
	case ".json":
		return readIngredientsJSON(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, errUnsupportedFormat)
	}
}

func loadTags(path string) ([]models.Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readTagsYAML(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, errUnsupportedFormat)
	}
}

// importCatalog loads the given files and hands them to the importer.
// An empty path skips that catalog.
func importCatalog(ctx context.Context, importer CatalogImporter, ingredientsPath, tagsPath string) error {
	if ingredientsPath != "" {
		items, err := loadIngredients(ingredientsPath)
		if err != nil {
			return fmt.Errorf("load ingredients: %w", err)
		}
		added, err := importer.ImportIngredients(ctx, items)
		if err != nil {
			return fmt.Errorf("import ingredients: %w", err)
		}
		logger.Log.Infow("ingredients imported", "file", ingredientsPath, "read", len(items), "added", added)
	}

	if tagsPath != "" {
		tags, err := loadTags(tagsPath)
		if err != nil {
			return fmt.Errorf("load tags: %w", err)
		}
		added, err := importer.ImportTags(ctx, tags)
		if err != nil {
			return fmt.Errorf("import tags: %w", err)
		}
		logger.Log.Infow("tags imported", "file", tagsPath, "read", len(tags), "added", added)
	}

	return nil
}
