// Package tour implements the guided onboarding walkthrough: the step
// catalog, the sequencer that walks it, and callout placement.
package tour

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sclera-app/sclera/internal/models"
)

// Side is the preferred placement of a callout relative to its target.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Emphasis is the visual treatment applied to a highlighted target.
type Emphasis string

const (
	EmphasisNone   Emphasis = "none"
	EmphasisNotch  Emphasis = "notch"
	EmphasisAction Emphasis = "action"
)

// Step describes a single walkthrough step. Steps are immutable after load.
type Step struct {
	// Target is the selector resolved through the Locator.
	Target string `yaml:"target"`

	// Title is the callout heading.
	Title string `yaml:"title"`

	// Description is the callout body text.
	Description string `yaml:"description"`

	// Side is the preferred callout side; defaults to bottom.
	Side Side `yaml:"side,omitempty"`

	// Emphasis is the highlight treatment; defaults to none.
	Emphasis Emphasis `yaml:"emphasis,omitempty"`
}

// Catalog is the fixed, ordered step list for one account type.
type Catalog []Step

type catalogFile struct {
	AccountType string `yaml:"account_type"`
	Steps       []Step `yaml:"steps"`
}

//go:embed builtin/*.yaml
var builtinFS embed.FS

// CatalogFor returns the built-in catalog for the given account type.
// Unknown account types yield an empty catalog; the tour then completes
// trivially with zero steps.
func CatalogFor(accountType models.AccountType) (Catalog, error) {
	catalogs, err := loadBuiltinCatalogs()
	if err != nil {
		return nil, err
	}
	return catalogs[accountType], nil
}

func loadBuiltinCatalogs() (map[models.AccountType]Catalog, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin catalogs: %w", err)
	}

	catalogs := make(map[models.AccountType]Catalog, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin catalog %s: %w", entry.Name(), err)
		}
		file, err := parseCatalog(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin catalog %s: %w", entry.Name(), err)
		}
		catalogs[models.AccountType(file.AccountType)] = Catalog(file.Steps)
	}

	return catalogs, nil
}

func parseCatalog(data []byte) (*catalogFile, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if strings.TrimSpace(file.AccountType) == "" {
		return nil, fmt.Errorf("account_type is required")
	}
	for i := range file.Steps {
		step := &file.Steps[i]
		if strings.TrimSpace(step.Target) == "" {
			return nil, fmt.Errorf("step %d: target is required", i+1)
		}
		if strings.TrimSpace(step.Title) == "" {
			return nil, fmt.Errorf("step %d: title is required", i+1)
		}
		if step.Side == "" {
			step.Side = SideBottom
		}
		if step.Emphasis == "" {
			step.Emphasis = EmphasisNone
		}
		switch step.Side {
		case SideTop, SideBottom, SideLeft, SideRight:
		default:
			return nil, fmt.Errorf("step %d: unknown side %q", i+1, step.Side)
		}
		switch step.Emphasis {
		case EmphasisNone, EmphasisNotch, EmphasisAction:
		default:
			return nil, fmt.Errorf("step %d: unknown emphasis %q", i+1, step.Emphasis)
		}
	}
	return &file, nil
}
