// Package material is the catalog of bulk materials a conveyor can be
// designed for. The default catalog is embedded; a TOML file with the same
// layout can replace it.
package material

import (
	_ "embed"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "Beltline/internal/errors"
	"Beltline/internal/units"
)

//go:embed materials.toml
var defaultCatalog string

type Profile struct {
	Name          string        `toml:"name" json:"name"`
	BulkDensity   float64       `toml:"density" json:"bulk_density_lbs_ft3"`
	AngleOfRepose units.Degrees `toml:"repose" json:"angle_of_repose_deg"`
	Surcharge     units.Degrees `toml:"surcharge" json:"surcharge_angle_deg"`
	// MaxSpeed is advisory only.
	MaxSpeed    units.FeetPerMinute `toml:"max_speed" json:"max_recommended_speed_fpm"`
	Description string              `toml:"description" json:"description"`
	Liner       string              `toml:"liner" json:"liner_recommendation"`
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errs.Wrap(errs.ErrInvalidInput, "material name is empty")
	}
	if p.BulkDensity <= 0 {
		return errs.Wrapf(errs.ErrInvalidInput, "material %q: bulk density %.2f", p.Name, p.BulkDensity)
	}
	if p.Surcharge < 0 || p.Surcharge >= 90 {
		return errs.Wrapf(errs.ErrInvalidInput, "material %q: surcharge angle %.1f", p.Name, p.Surcharge)
	}
	return nil
}

type Catalog struct {
	byName map[string]Profile
	names  []string
}

type catalogFile struct {
	Material []Profile `toml:"material"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Decode(strings.NewReader(defaultCatalog))
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog file. An empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrapf(err, "open material catalog %s", path)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errs.Wrap(err, "decode material catalog")
	}
	if len(file.Material) == 0 {
		return nil, errs.Wrap(errs.ErrInvalidInput, "material catalog is empty")
	}

	c := &Catalog{byName: make(map[string]Profile, len(file.Material))}
	for _, p := range file.Material {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		key := normalize(p.Name)
		if _, dup := c.byName[key]; dup {
			return nil, errs.Wrapf(errs.ErrConflict, "material %q listed twice", p.Name)
		}
		c.byName[key] = p
		c.names = append(c.names, p.Name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Lookup finds a material by name, ignoring case and surrounding space.
func (c *Catalog) Lookup(name string) (Profile, error) {
	p, ok := c.byName[normalize(name)]
	if !ok {
		return Profile{}, errs.Wrapf(errs.ErrNotFound, "material %q", name)
	}
	return p, nil
}

func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalog) All() []Profile {
	out := make([]Profile, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.byName[normalize(n)])
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
