package object

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/gamedata/internal/game/data"
	"github.com/cory-johannsen/gamedata/internal/parse"
)

// tableStep is one table in the load pipeline: a name (the file is
// <name>.txt), whether the file may be absent, and the run function
// that parses the stream and finishes the table.
type tableStep struct {
	name     string
	optional bool
	run      func(io.Reader) error
	count    func() int
}

// Loader runs the full table pipeline against a gamedata directory.
// Tables load in a fixed order so each finish phase sees every table it
// cross-references already materialized.
type Loader struct {
	log   *zap.Logger
	dir   string
	runID uuid.UUID
	cat   *Catalog
}

// NewLoader returns a loader reading <table>.txt files from dir.
//
// Precondition: log and names must be non-nil.
func NewLoader(log *zap.Logger, names *data.Names, dir string) *Loader {
	if log == nil {
		panic("object: NewLoader requires non-nil logger")
	}
	return &Loader{
		log:   log,
		dir:   dir,
		runID: uuid.New(),
		cat:   NewCatalog(names),
	}
}

// Catalog returns the catalog the loader populates.
func (l *Loader) Catalog() *Catalog { return l.cat }

func (l *Loader) steps() []tableStep {
	c := l.cat
	return []tableStep{
		{
			name: "projection",
			run: func(r io.Reader) error {
				p := newProjectionParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishProjections(p.Builder())
			},
			count: func() int { return len(c.Projections) },
		},
		{
			name: "object_base",
			run: func(r io.Reader) error {
				p := newBaseParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishBases(p.Builder())
			},
			count: func() int { return len(c.Bases) },
		},
		{
			name: "slay",
			run: func(r io.Reader) error {
				p := newSlayParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishSlays(p.Builder())
			},
			count: func() int { return len(c.Slays) },
		},
		{
			name: "brand",
			run: func(r io.Reader) error {
				p := newBrandParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishBrands(p.Builder())
			},
			count: func() int { return len(c.Brands) },
		},
		{
			name: "curse",
			run: func(r io.Reader) error {
				p := newCurseParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishCurses(p.Builder())
			},
			count: func() int { return len(c.Curses) },
		},
		{
			name: "activation",
			run: func(r io.Reader) error {
				p := newActivationParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishActivations(p.Builder())
			},
			count: func() int { return len(c.Activations) },
		},
		{
			name: "object",
			run: func(r io.Reader) error {
				p := newKindParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishKinds(p.Builder())
			},
			count: func() int { return len(c.Kinds) },
		},
		{
			name: "ego_item",
			run: func(r io.Reader) error {
				p := newEgoParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishEgos(p.Builder())
			},
			count: func() int { return len(c.Egos) },
		},
		{
			name: "artifact",
			run: func(r io.Reader) error {
				p := newArtifactParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishArtifacts(p.Builder())
			},
			count: func() int { return c.artifactCount },
		},
		{
			name: "object_property",
			run: func(r io.Reader) error {
				p := newPropertyParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishProperties(p.Builder())
			},
			count: func() int { return len(c.Properties) },
		},
		{
			name: "object_power",
			run: func(r io.Reader) error {
				p := newPowerParser(c)
				if err := parse.Run(p, r); err != nil {
					return err
				}
				return c.finishPowers(p.Builder())
			},
			count: func() int { return len(c.Calculations) },
		},
	}
}

// LoadAll loads every table in order and returns the populated catalog.
// A missing required file or any parse error aborts the run; a missing
// optional file skips its table.
func (l *Loader) LoadAll() (*Catalog, error) {
	start := time.Now()
	log := l.log.With(zap.String("run_id", l.runID.String()), zap.String("dir", l.dir))
	log.Info("loading gamedata tables")

	for _, step := range l.steps() {
		began := time.Now()
		path := filepath.Join(l.dir, step.name+".txt")
		f, err := os.Open(path)
		if err != nil {
			if step.optional && errors.Is(err, fs.ErrNotExist) {
				log.Info("skipping optional table", zap.String("table", step.name))
				continue
			}
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		err = step.run(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("loading table %s: %w", step.name, err)
		}
		log.Info("loaded table",
			zap.String("table", step.name),
			zap.Int("count", step.count()),
			zap.Duration("duration", time.Since(began)),
		)
	}

	log.Info("gamedata tables loaded", zap.Duration("total", time.Since(start)))
	return l.cat, nil
}

// Cleanup releases every loaded table. Safe to call more than once.
func (l *Loader) Cleanup() {
	l.cat.Cleanup()
}
