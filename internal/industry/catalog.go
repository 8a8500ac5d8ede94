package industry

import (
	_ "embed"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Profile describes one business vertical.
type Profile struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	Keywords     []string `yaml:"keywords" json:"keywords"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	Regulations  []string `yaml:"regulations" json:"regulations"`
	KPIs         []string `yaml:"kpis" json:"kpis"`
	FocusAreas   []string `yaml:"focusAreas" json:"focusAreas"`
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	p.Keywords = slices.Clone(p.Keywords)
	p.Technologies = slices.Clone(p.Technologies)
	p.Regulations = slices.Clone(p.Regulations)
	p.KPIs = slices.Clone(p.KPIs)
	p.FocusAreas = slices.Clone(p.FocusAreas)
	return p
}

// ProfileMatchers holds the precompiled term matchers of one profile.
type ProfileMatchers struct {
	Keywords     []Matcher
	Technologies []Matcher
	Regulations  []Matcher
}

// Catalog is the immutable, ordered set of industry profiles.
// It is safe for concurrent use.
type Catalog struct {
	version  string
	profiles []Profile
	index    map[string]int
	matchers map[string]ProfileMatchers
}

type catalogFile struct {
	Version    string    `yaml:"version"`
	Industries []Profile `yaml:"industries"`
}

// Parse decodes a YAML catalog document and precompiles its matchers.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "industry: parse catalog")
	}
	return New(file.Version, file.Industries)
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "industry: read catalog %s", path)
	}
	return Parse(data)
}

// New builds a catalog from profiles in declaration order.
func New(version string, profiles []Profile) (*Catalog, error) {
	if len(profiles) == 0 {
		return nil, eris.New("industry: catalog has no profiles")
	}
	c := &Catalog{
		version:  strings.TrimSpace(version),
		profiles: make([]Profile, 0, len(profiles)),
		index:    make(map[string]int, len(profiles)),
		matchers: make(map[string]ProfileMatchers, len(profiles)),
	}
	for i, p := range profiles {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, eris.Errorf("industry: profile %d has empty id", i)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, eris.Errorf("industry: profile %q has empty name", p.ID)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, eris.Errorf("industry: duplicate profile id %q", p.ID)
		}
		p = p.Clone()
		c.index[p.ID] = len(c.profiles)
		c.profiles = append(c.profiles, p)
		c.matchers[p.ID] = CompileProfile(p)
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded document is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Version returns the catalog data version.
func (c *Catalog) Version() string {
	return c.version
}

// All returns every profile in declaration order.
func (c *Catalog) All() []Profile {
	out := make([]Profile, 0, len(c.profiles))
	for _, p := range c.profiles {
		out = append(out, p.Clone())
	}
	return out
}

// Len returns the number of profiles.
func (c *Catalog) Len() int {
	return len(c.profiles)
}

// ByID returns the profile with exactly id. A missing id is not an error.
func (c *Catalog) ByID(id string) (Profile, bool) {
	i, ok := c.index[id]
	if !ok {
		return Profile{}, false
	}
	return c.profiles[i].Clone(), true
}

// Matchers returns the precompiled matchers for id.
func (c *Catalog) Matchers(id string) (ProfileMatchers, bool) {
	m, ok := c.matchers[id]
	return m, ok
}

// MatchersFor returns the precompiled matchers for p, compiling them on the fly
// when p is not a member of the catalog.
func (c *Catalog) MatchersFor(p Profile) ProfileMatchers {
	if c != nil {
		if m, ok := c.matchers[p.ID]; ok {
			if i := c.index[p.ID]; sameTerms(c.profiles[i], p) {
				return m
			}
		}
	}
	return CompileProfile(p)
}

// CompileProfile builds the matchers of p without consulting any catalog.
func CompileProfile(p Profile) ProfileMatchers {
	return ProfileMatchers{
		Keywords:     CompileAll(p.Keywords),
		Technologies: CompileAll(p.Technologies),
		Regulations:  CompileAll(p.Regulations),
	}
}

func sameTerms(a, b Profile) bool {
	return slices.Equal(a.Keywords, b.Keywords) &&
		slices.Equal(a.Technologies, b.Technologies) &&
		slices.Equal(a.Regulations, b.Regulations)
}
