package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIngredientsCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []models.Ingredient
		wantErr  bool
	}{
		{
			name:  "rows after header",
			input: "name,measurement_unit\nabricot jam,g\n\"salt, coarse\", pinch\n",
			expected: []models.Ingredient{
				{Name: "abricot jam", MeasurementUnit: "g"},
				{Name: "salt, coarse", MeasurementUnit: "pinch"},
			},
		},
		{name: "header only", input: "name,measurement_unit\n"},
		{name: "empty file", input: ""},
		{name: "wrong column count", input: "name,measurement_unit\nflour\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := readIngredientsCSV(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, items)
		})
	}
}

func TestReadIngredientsJSON(t *testing.T) {
	items, err := readIngredientsJSON(strings.NewReader(`[{"name":"milk","measurement_unit":"ml"}]`))
	require.NoError(t, err)
	assert.Equal(t, []models.Ingredient{{Name: "milk", MeasurementUnit: "ml"}}, items)

	_, err = readIngredientsJSON(strings.NewReader(`{"name":`))
	assert.Error(t, err)
}

func TestReadTagsYAML(t *testing.T) {
	input := `
- name: Breakfast
  color: "#E26C2D"
  slug: breakfast
- name: Dinner
  color: "#49B64E"
  slug: dinner
`
	tags, err := readTagsYAML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []models.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Dinner", Color: "#49B64E", Slug: "dinner"},
	}, tags)

	tags, err = readTagsYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadByExtension(t *testing.T) {
	_, err := loadIngredients(writeFile(t, "ingredients.txt", "x"))
	assert.ErrorIs(t, err, errUnsupportedFormat)

	_, err = loadTags(writeFile(t, "tags.json", "[]"))
	assert.ErrorIs(t, err, errUnsupportedFormat)

	items, err := loadIngredients(writeFile(t, "ingredients.JSON", `[{"name":"egg","measurement_unit":"pcs"}]`))
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = loadIngredients(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestImportCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ingredientsPath := writeFile(t, "ingredients.csv", "name,measurement_unit\nflour,g\nmilk,ml\n")
	tagsPath := writeFile(t, "tags.yaml", "- name: Lunch\n  color: \"#000000\"\n  slug: lunch\n")

	t.Run("both catalogs", func(t *testing.T) {
		m := NewMockCatalogImporter(ctrl)
		m.EXPECT().ImportIngredients(gomock.Any(), []models.Ingredient{
			{Name: "flour", MeasurementUnit: "g"},
			{Name: "milk", MeasurementUnit: "ml"},
		}).Return(2, nil)
		m.EXPECT().ImportTags(gomock.Any(), []models.Tag{{Name: "Lunch", Color: "#000000", Slug: "lunch"}}).Return(1, nil)

		assert.NoError(t, importCatalog(context.Background(), m, ingredientsPath, tagsPath))
	})

	t.Run("tags only", func(t *testing.T) {
		m := NewMockCatalogImporter(ctrl)
		m.EXPECT().ImportTags(gomock.Any(), gomock.Any()).Return(0, nil)

		assert.NoError(t, importCatalog(context.Background(), m, "", tagsPath))
	})

	t.Run("import failure stops", func(t *testing.T) {
		m := NewMockCatalogImporter(ctrl)
		m.EXPECT().ImportIngredients(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

		err := importCatalog(context.Background(), m, ingredientsPath, tagsPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "import ingredients")
	})
}

func TestParseFlags(t *testing.T) {
	configPath, ingredientsPath, tagsPath := parseFlags([]string{"-ingredients", "data/ingredients.csv", "-tags", "data/tags.yaml"})
	assert.Equal(t, "config.env", configPath)
	assert.Equal(t, "data/ingredients.csv", ingredientsPath)
	assert.Equal(t, "data/tags.yaml", tagsPath)
}

func TestParseConfig_Defaults(t *testing.T) {
	for _, key := range []string{"APP_LOG_LEVEL", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DB", "REDIS_PORT", "REDIS_TAG_CACHE_EXP_SECOND"} {
		t.Setenv(key, "")
	}

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost", cfg.PGHost)
	assert.Equal(t, 5432, cfg.PGPort)
	assert.Equal(t, "foodgram", cfg.PGDB)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, 300, cfg.RedisTagCacheExpSecond)
}
