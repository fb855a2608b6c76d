package staticcatalog

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"wagontrail/internal/domain/trail"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Provider reads the authored catalog tables from YAML files under
// Root. Files are read once per process; a missing or malformed file
// degrades to the built-in tables so a bad data drop never takes the
// game down.
type Provider struct {
	Root string
	Log  *logrus.Logger

	once      sync.Once
	catalogs  trail.Catalogs
	landmarks []trail.Landmark
}

type catalogFile struct {
	Weather    []trail.WeatherPattern `yaml:"weather"`
	Conditions []trail.ConditionDef   `yaml:"conditions"`
	Tuning     trail.StatusTuning     `yaml:"tuning"`
	Events     []trail.EventDef       `yaml:"events"`
	Animals    []trail.AnimalSpec     `yaml:"animals"`
}

type routeFile struct {
	Landmarks []trail.Landmark `yaml:"landmarks"`
}

func (p *Provider) Load(_ context.Context) (trail.Catalogs, error) {
	p.once.Do(p.load)
	return p.catalogs, nil
}

func (p *Provider) Landmarks(_ context.Context) ([]trail.Landmark, error) {
	p.once.Do(p.load)
	out := make([]trail.Landmark, len(p.landmarks))
	copy(out, p.landmarks)
	return out, nil
}

func (p *Provider) load() {
	p.catalogs = trail.DefaultCatalogs()
	p.landmarks = trail.DefaultLandmarks()
	if p.Root == "" {
		return
	}
	log := p.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	if raw, err := os.ReadFile(filepath.Join(p.Root, "catalogs.yaml")); err == nil {
		var file catalogFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			log.WithError(err).Warn("catalogs.yaml unreadable, using built-in tables")
		} else {
			c := trail.Catalogs{
				Weather:    file.Weather,
				Conditions: file.Conditions,
				Tuning:     file.Tuning,
				Events:     file.Events,
				Animals:    file.Animals,
			}
			c.Validate()
			p.catalogs = merge(p.catalogs, c)
		}
	} else if !os.IsNotExist(err) {
		log.WithError(err).Warn("catalogs.yaml unreadable, using built-in tables")
	}

	if raw, err := os.ReadFile(filepath.Join(p.Root, "route.yaml")); err == nil {
		var file routeFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			log.WithError(err).Warn("route.yaml unreadable, using built-in route")
		} else if len(file.Landmarks) > 0 {
			p.landmarks = file.Landmarks
		}
	} else if !os.IsNotExist(err) {
		log.WithError(err).Warn("route.yaml unreadable, using built-in route")
	}
}

// merge keeps the built-in table for any section the file leaves
// empty, so an authored file can override weather alone without
// re-declaring every event.
func merge(base, override trail.Catalogs) trail.Catalogs {
	out := base
	if len(override.Weather) > 0 {
		out.Weather = override.Weather
	}
	if len(override.Conditions) > 0 {
		out.Conditions = override.Conditions
	}
	if override.Tuning.MaxConcurrent > 0 {
		out.Tuning = override.Tuning
	}
	if len(override.Events) > 0 {
		out.Events = override.Events
	}
	if len(override.Animals) > 0 {
		out.Animals = override.Animals
	}
	return out
}
