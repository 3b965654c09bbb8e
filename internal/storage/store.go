package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/hopfviz/internal/hopf"
)

var ErrEmptyExport = errors.New("storage: nothing to export")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// FiberMetadata describes one exported fiber.
type FiberMetadata struct {
	Index   int        `json:"index"`
	Base    [3]float64 `json:"base"`
	Hue     int        `json:"hue"`
	Color   string     `json:"color"`
	Samples int        `json:"samples"`
	Radius  float64    `json:"radius,omitempty"`
}

type ExportMetadata struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Timestamp time.Time       `json:"timestamp"`
	Steps     int             `json:"steps"`
	Count     int             `json:"count"`
	Fibers    []FiberMetadata `json:"fibers"`
}

// Save writes the fibers under a new export directory holding metadata.json
// and fibers.csv, and returns the export id.
func (s *Store) Save(name string, fibers []hopf.Fiber) (string, error) {
	if len(fibers) == 0 {
		return "", ErrEmptyExport
	}

	now := time.Now()
	exportID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	dir := filepath.Join(s.baseDir, exportID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := ExportMetadata{
		ID:        exportID,
		Name:      name,
		Timestamp: now,
		Steps:     len(fibers[0].Points),
		Count:     len(fibers),
		Fibers:    make([]FiberMetadata, len(fibers)),
	}
	for i, f := range fibers {
		r, ok := hopf.FiberRadius(f.Points)
		if !ok {
			r = 0
		}
		meta.Fibers[i] = FiberMetadata{
			Index:   i,
			Base:    [3]float64{f.Base.X, f.Base.Y, f.Base.Z},
			Hue:     f.Color.Hue,
			Color:   f.Color.Hex(),
			Samples: len(f.Points),
			Radius:  r,
		}
	}

	if err := writeMetadata(filepath.Join(dir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeFibers(filepath.Join(dir, "fibers.csv"), fibers); err != nil {
		return "", err
	}
	return exportID, nil
}

func writeMetadata(path string, meta ExportMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeFibers(path string, fibers []hopf.Fiber) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"fiber", "sample", "x", "y", "z"}); err != nil {
		return err
	}
	for i, fiber := range fibers {
		for j, p := range fiber.Points {
			row := []string{
				strconv.Itoa(i),
				strconv.Itoa(j),
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
				strconv.FormatFloat(p.Z, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]ExportMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ExportMetadata{}, nil
		}
		return nil, err
	}

	exports := make([]ExportMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		exports = append(exports, *meta)
	}
	sort.SliceStable(exports, func(i, j int) bool { return exports[i].Timestamp.Before(exports[j].Timestamp) })
	return exports, nil
}

func (s *Store) Load(exportID string) (*ExportMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, exportID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta ExportMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFibers reads the sampled points of every fiber in an export, indexed by fiber.
func (s *Store) LoadFibers(exportID string) ([][]hopf.Point3, error) {
	file, err := os.Open(filepath.Join(s.baseDir, exportID, "fibers.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var fibers [][]hopf.Point3
	for i, record := range records {
		if i == 0 {
			continue
		}
		idx, err := strconv.Atoi(record[0])
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("row %d: bad fiber index %q", i+1, record[0])
		}
		var xyz [3]float64
		for k := range xyz {
			if xyz[k], err = strconv.ParseFloat(record[2+k], 64); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		for len(fibers) <= idx {
			fibers = append(fibers, nil)
		}
		fibers[idx] = append(fibers[idx], hopf.Point3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	return fibers, nil
}
