package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Output file names inside the output directory.
const (
	PopulationFile = "population.csv"
	WindowsFile    = "windows.csv"
	BookmarksFile  = "bookmarks.csv"
	ConfigFile     = "config.yaml"
)

// csvFile is one CSV output whose header is written with the first record.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func createCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{f: f}, nil
}

// write appends records, emitting the header only on the first call.
func write[T any](c *csvFile, records []T) error {
	if len(records) == 0 {
		return nil
	}
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// Output handles run output with CSV logging.
// A nil *Output is valid and discards everything.
type Output struct {
	dir        string
	population *csvFile
	windows    *csvFile
	bookmarks  *csvFile
}

// NewOutput creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	o := &Output{dir: dir}
	var err error
	if o.population, err = createCSV(dir, PopulationFile); err != nil {
		return nil, err
	}
	if o.windows, err = createCSV(dir, WindowsFile); err != nil {
		o.Close()
		return nil, err
	}
	if o.bookmarks, err = createCSV(dir, BookmarksFile); err != nil {
		o.Close()
		return nil, err
	}
	return o, nil
}

// configWriter is implemented by config.Config.
type configWriter interface {
	WriteYAML(path string) error
}

// WriteConfig saves the effective configuration next to the CSV files.
func (o *Output) WriteConfig(cfg configWriter) error {
	if o == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(o.dir, ConfigFile))
}

// WriteSample appends one population sample to population.csv.
func (o *Output) WriteSample(s Sample) error {
	if o == nil {
		return nil
	}
	if err := write(o.population, []Sample{s}); err != nil {
		return fmt.Errorf("writing population: %w", err)
	}
	return nil
}

// WriteWindow appends a window stats record to windows.csv.
func (o *Output) WriteWindow(stats WindowStats) error {
	if o == nil {
		return nil
	}
	if err := write(o.windows, []WindowStats{stats}); err != nil {
		return fmt.Errorf("writing window: %w", err)
	}
	return nil
}

// WriteBookmark appends a bookmark record to bookmarks.csv.
func (o *Output) WriteBookmark(b Bookmark) error {
	if o == nil {
		return nil
	}
	if err := write(o.bookmarks, []Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Close flushes and closes all output files.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{o.population, o.windows, o.bookmarks} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReadSamples loads a population.csv file.
func ReadSamples(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var samples []Sample
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return samples, nil
}
