package scoreboard

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/onair/util/sanitize"
)

//go:embed templates/*.yaml
var templatesFS embed.FS

const (
	baseTemplate = "base"
	// DefaultSport is used when a sport id is unknown.
	DefaultSport = "soccer"
)

// Catalog holds the universal base template and the sport definitions merged onto it.
type Catalog struct {
	mu     sync.RWMutex
	base   map[string]any
	sports map[string]map[string]any
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the catalog of embedded sport templates.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := NewCatalog()
		if err != nil {
			panic(fmt.Sprintf("embedded scoreboard templates: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// NewCatalog parses the embedded templates.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{sports: make(map[string]map[string]any)}
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		data, err := templatesFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		def, err := parseTemplate(entry.Name(), data)
		if err != nil {
			return nil, err
		}
		if name == baseTemplate {
			c.base = def
			continue
		}
		c.sports[sportKey(def, name)] = def
	}
	if c.base == nil {
		return nil, fmt.Errorf("missing %s template", baseTemplate)
	}
	if _, ok := c.sports[DefaultSport]; !ok {
		return nil, fmt.Errorf("missing %s template", DefaultSport)
	}
	return c, nil
}

// LoadDir adds or overrides sport definitions from YAML or TOML files in dir.
// Files named base.* replace the universal base.
func (c *Catalog) LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" && ext != ".toml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return loaded, err
		}
		def, err := parseTemplate(entry.Name(), data)
		if err != nil {
			return loaded, err
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		c.mu.Lock()
		if name == baseTemplate {
			c.base = def
		} else {
			c.sports[sportKey(def, name)] = def
		}
		c.mu.Unlock()
		loaded = append(loaded, name)
	}
	return loaded, nil
}

// Sports lists the known sport ids.
func (c *Catalog) Sports() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.sports))
	for id := range c.sports {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether a sport id is known (case-insensitive).
func (c *Catalog) Has(sportID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.sports[sanitize.Slug(sportID)]
	return ok
}

// Load builds the scoreboard for sportID, falling back to soccer.
func (c *Catalog) Load(sportID string) State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.sports[sanitize.Slug(sportID)]
	if !ok {
		def = c.sports[DefaultSport]
	}
	return State(DeepMerge(c.base, def))
}

// Load builds a scoreboard from the embedded catalog.
func Load(sportID string) State {
	return DefaultCatalog().Load(sportID)
}

func sportKey(def map[string]any, fallback string) string {
	if id, ok := def["sportId"].(string); ok && id != "" {
		return sanitize.Slug(id)
	}
	return sanitize.Slug(fallback)
}

func parseTemplate(name string, data []byte) (map[string]any, error) {
	var def map[string]any
	var err error
	if filepath.Ext(name) == ".toml" {
		err = toml.Unmarshal(data, &def)
	} else {
		err = yaml.Unmarshal(data, &def)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	if def == nil {
		def = map[string]any{}
	}
	return def, nil
}
