// Package seed imports users, organizations, memberships, officer roles,
// events and announcements from CSV exports.
package seed

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/db/controller/setting"
	"github.com/campushub/campushub/internal/db/models"
)

// LastImportSetting is the settings row holding the last Summary.
const LastImportSetting = "seed_last_import"

// dateLayout is the format of every date column.
const dateLayout = "2006-01-02"

// errSkip marks a row that was left out. The run goes on.
var errSkip = errors.New("row skipped")

// Summary counts imported and skipped rows per file.
type Summary struct {
	ImportedAt time.Time      `json:"imported_at"`
	DataPath   string         `json:"data_path"`
	Imported   map[string]int `json:"imported"`
	Skipped    map[string]int `json:"skipped"`
}

// Importer loads CSV files from a directory into the database.
type Importer struct {
	db              *gorm.DB
	dataPath        string
	defaultPassword string

	hashOnce sync.Once
	hash     string
	hashErr  error
}

type source struct {
	name  string
	files []string
	load  func(ctx context.Context, db *gorm.DB, r row) error
}

// NewImporter creates an importer reading from dataPath. Seeded users get
// defaultPassword; if it is empty a random one is generated and logged once.
func NewImporter(db *gorm.DB, dataPath, defaultPassword string) *Importer {
	return &Importer{db: db, dataPath: dataPath, defaultPassword: defaultPassword}
}

// sources lists the files in dependency order.
func (i *Importer) sources() []source {
	return []source{
		{name: "users", files: []string{"users.csv"}, load: i.loadUser},
		{name: "organizations", files: []string{"organizations.csv"}, load: loadOrganization},
		{name: "memberships", files: []string{"membership.csv", "memberships.csv"}, load: loadMembership},
		{name: "officer_roles", files: []string{"officer_roles.csv", "officer_role.csv"}, load: loadOfficerRole},
		{name: "events", files: []string{"events.csv"}, load: loadEvent},
		{name: "announcements", files: []string{"announcements.csv"}, load: loadAnnouncement},
	}
}

// Run imports every file found in the data directory. Missing files and bad
// rows are skipped with a warning; a store failure stops the run.
func (i *Importer) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		ImportedAt: time.Now().UTC(),
		DataPath:   i.dataPath,
		Imported:   map[string]int{},
		Skipped:    map[string]int{},
	}

	db := i.db.WithContext(ctx)

	for _, src := range i.sources() {
		path, rows, err := i.read(src.files)
		if err != nil {
			return nil, err
		}

		if path == "" {
			log.Debug().Str("source", src.name).Str("dir", i.dataPath).Msg("no seed file, skipping")
			continue
		}

		for n, r := range rows {
			err := src.load(ctx, db, r)

			switch {
			case err == nil:
				summary.Imported[src.name]++
			case errors.Is(err, errSkip):
				summary.Skipped[src.name]++

				log.Warn().Str("file", path).Int("row", n+2).Msg(err.Error())
			default:
				return nil, apperr.Store(err, "failed to import "+src.name)
			}
		}

		log.Info().Str("file", path).
			Int("imported", summary.Imported[src.name]).
			Int("skipped", summary.Skipped[src.name]).
			Msg("seed file imported")
	}

	if err := setting.SetJSON(db, LastImportSetting, summary); err != nil {
		return nil, apperr.Store(err, "failed to store seed summary")
	}

	return summary, nil
}

// LastSummary returns the summary stored by the last Run.
func (i *Importer) LastSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	err := setting.GetJSON(i.db.WithContext(ctx), LastImportSetting, summary)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return nil, apperr.NotFound("no seed import recorded")
	}

	if err != nil {
		return nil, apperr.Store(err, "failed to read seed summary")
	}

	return summary, nil
}

// read returns the rows of the first existing file of names.
func (i *Importer) read(names []string) (string, []row, error) {
	for _, name := range names {
		path := filepath.Join(i.dataPath, name)

		rows, err := readCSV(path)
		if errors.Is(err, errMissingFile) {
			continue
		}

		if err != nil {
			return "", nil, err
		}

		return path, rows, nil
	}

	return "", nil, nil
}

// passwordHash hashes the seed password once for all users.
func (i *Importer) passwordHash() (string, error) {
	i.hashOnce.Do(func() {
		password := i.defaultPassword
		if password == "" {
			password = uuid.NewString()

			log.Warn().Str("password", password).Msg("no seed password configured, generated one for seeded users")
		}

		i.hash, i.hashErr = models.HashPassword(password)
	})

	return i.hash, i.hashErr
}
