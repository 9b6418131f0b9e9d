package confloader

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/oklog/ulid/v2"

	"github.com/yndnr/migrations-go/internal/core/domain"
	"github.com/yndnr/migrations-go/internal/core/schema"
	"github.com/yndnr/migrations-go/internal/telemetry/logger"
)

// Metrics receives load outcomes. *metric.Registry implements it.
type Metrics interface {
	ObserveLoad(result string, d time.Duration)
	AddKeysApplied(keys []string)
}

// Loader loads a migrations configuration file onto a domain.Target.
//
// A Loader is safe for concurrent use; loads are serialized.
type Loader struct {
	parser    Parser
	resolver  *Resolver
	envPrefix string
	logger    logger.Logger
	metrics   Metrics

	mu      sync.Mutex
	current ResolvedPath
	loaded  bool
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithWorkDir sets the directory searched first. Defaults to the process
// working directory.
func WithWorkDir(dir string) Option {
	return func(l *Loader) {
		l.resolver.workDir = dir
	}
}

// WithBaseDir sets the directory searched when the file is not found in
// the working directory.
func WithBaseDir(dir string) Option {
	return func(l *Loader) {
		l.resolver.SetBaseDir(dir)
	}
}

// WithEnvPrefix enables the environment overlay: a variable named
// <prefix><KEY> overrides the schema key <key>. An empty prefix disables it.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithLogger sets the logger.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		l.logger = lg
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// NewLoader creates a loader that decodes files with parser. A nil parser
// selects one from each file's extension.
func NewLoader(parser Parser, opts ...Option) *Loader {
	wd, _ := os.Getwd()
	l := &Loader{
		parser:   parser,
		resolver: NewResolver(wd, ""),
		logger:   logger.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load resolves filename, parses it and applies it to target.
//
// The file counts as loaded once it has been read and parsed, even if
// applying it fails afterwards. The directory of a loaded file becomes the
// base directory for later loads.
func (l *Loader) Load(filename string, target domain.Target) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	log := l.logger.With(logger.KeyLoadID, newLoadID(), logger.KeyFile, filename)

	defer func() {
		result := domain.GetErrorCode(err)
		if err != nil && result == "" {
			result = "error"
		}
		if l.metrics != nil {
			l.metrics.ObserveLoad(result, time.Since(start))
		}
		if err != nil {
			log.Error("configuration load failed", logger.KeyCode, result, logger.KeyError, err)
		}
	}()

	resolved, err := l.resolver.Resolve(filename)
	if err != nil {
		log.Debug("configuration file not found", "candidates", l.resolver.Candidates(filename))
		return err
	}
	log = log.With("path", resolved.Absolute)
	log.Debug("configuration file resolved")

	parser := l.parser
	if parser == nil {
		if parser, err = ParserFor(resolved.Absolute); err != nil {
			return err
		}
	}
	format := formatName(parser)

	data, err := file.Provider(resolved.Absolute).ReadBytes()
	if err != nil {
		return domain.UnreadableFile(resolved.Absolute, err)
	}

	doc, err := parser.Unmarshal(data)
	if err != nil {
		return domain.InvalidFileFormat(resolved.Absolute, format, err)
	}

	l.current = resolved
	l.loaded = true
	l.resolver.SetBaseDir(resolved.Dir())

	merged, err := l.overlay(doc)
	if err != nil {
		return err
	}
	l.relativeToFile(merged, resolved.Dir())

	if v, ok := merged[schema.KeyOrganizeMigrations]; ok && v != nil {
		if s, isString := v.(string); !isString || !strings.EqualFold(strings.TrimSpace(s), schema.OrganizeByYearAndMonth) {
			log.Warn("organize_migrations value has no effect", "value", v)
		}
	}

	if err := schema.Apply(merged, target); err != nil {
		return err
	}

	keys := appliedKeys(merged)
	if l.metrics != nil {
		l.metrics.AddKeysApplied(keys)
	}
	log.Info("configuration loaded",
		logger.KeyFormat, format,
		"keys", len(keys),
		"duration", time.Since(start),
	)
	return nil
}

// appliedKeys lists the keys that reached the target. Null values dispatch
// nothing and are left out.
func appliedKeys(doc domain.Document) []string {
	keys := make([]string, 0, len(doc))
	for k, v := range doc {
		if v != nil {
			keys = append(keys, k)
		}
	}
	return keys
}

// overlay merges doc and, when enabled, the environment into one document.
// Only variables naming a schema key are picked up.
func (l *Loader) overlay(doc map[string]any) (domain.Document, error) {
	k := koanf.New(".")
	if err := k.Load(documentProvider(doc), nil); err != nil {
		return nil, err
	}

	if l.envPrefix != "" {
		prefix := l.envPrefix
		provider := env.Provider(prefix, ".", func(s string) string {
			key := strings.ToLower(strings.TrimPrefix(s, prefix))
			if !schema.Known(key) {
				return ""
			}
			return key
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, err
		}
	}

	return domain.Document(k.Raw()), nil
}

// relativeToFile rewrites a relative migrations_directory against dir when
// that directory exists there.
func (l *Loader) relativeToFile(doc domain.Document, dir string) {
	raw, ok := doc[schema.KeyMigrationsDirectory].(string)
	if !ok || raw == "" || filepath.IsAbs(raw) {
		return
	}
	candidate := filepath.Join(dir, raw)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		doc[schema.KeyMigrationsDirectory] = candidate
	}
}

// File returns the absolute path of the last successfully read file, or
// "" before any load.
func (l *Loader) File() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		return ""
	}
	return l.current.Absolute
}

// Resolved returns the last resolved path and whether a file was loaded.
func (l *Loader) Resolved() (ResolvedPath, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.loaded
}

// IsLoaded returns true if a file has been read and parsed.
func (l *Loader) IsLoaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// WorkDir returns the directory searched first.
func (l *Loader) WorkDir() string {
	return l.resolver.WorkDir()
}

// BaseDir returns the current fallback directory.
func (l *Loader) BaseDir() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolver.BaseDir()
}

func newLoadID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return ""
	}
	return id.String()
}
