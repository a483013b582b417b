package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFromDirectory loads every stage prompt under baseDir. Layout:
//
//	baseDir/
//	  prompts/
//	    extraction/
//	      pitch_deck.json
//	    market/
//	      research.json
//	    ...
//
// Missing IDs and categories are derived from the file path, so a prompt
// file only needs the content fields.
func LoadFromDirectory(baseDir string) error {
	registry := Get()

	promptDir := filepath.Join(baseDir, "prompts")
	if _, err := os.Stat(promptDir); os.IsNotExist(err) {
		return fmt.Errorf("prompts directory not found: %s", promptDir)
	}

	err := filepath.Walk(promptDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var t Template
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		if t.ID == "" {
			t.ID = idFromPath(path, promptDir)
		}
		if t.Category == "" {
			t.Category = stageFromPath(path, promptDir)
		}
		if !KnownStage(t.Category) {
			fmt.Printf("[prompt.Loader] Note: %s has no pipeline stage (category %q)\n", t.ID, t.Category)
		}

		return registry.Register(&t)
	})
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}

	fmt.Printf("[prompt.Loader] Loaded %d prompts from %s\n", registry.Count(), baseDir)
	return nil
}

// idFromPath derives "extraction.pitch_deck" from prompts/extraction/pitch_deck.json.
func idFromPath(path string, promptDir string) string {
	relPath, _ := filepath.Rel(promptDir, path)
	relPath = strings.TrimSuffix(relPath, ".json")
	return strings.ReplaceAll(relPath, string(filepath.Separator), ".")
}

// stageFromPath derives the stage from the first directory under prompts/.
func stageFromPath(path string, promptDir string) string {
	relPath, _ := filepath.Rel(promptDir, path)
	parts := strings.Split(relPath, string(filepath.Separator))
	if len(parts) > 1 {
		return parts[0]
	}
	return "default"
}
