package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/hopfviz/internal/hopf"
)

type FiberData struct {
	Base    [3]float64   `json:"base"`
	Hue     int          `json:"hue"`
	Color   string       `json:"color"`
	Points  [][3]float64 `json:"points"`
	Dropped int          `json:"dropped,omitempty"`
}

type ExportData struct {
	Name   string      `json:"name"`
	Steps  int         `json:"steps"`
	Count  int         `json:"count"`
	Fibers []FiberData `json:"fibers"`
}

// newExportData copies the fibers into their JSON form. JSON has no
// representation for NaN or infinities, so such samples are dropped and
// counted.
func newExportData(name string, fibers []hopf.Fiber) ExportData {
	data := ExportData{
		Name:   name,
		Count:  len(fibers),
		Fibers: make([]FiberData, len(fibers)),
	}
	if len(fibers) > 0 {
		data.Steps = len(fibers[0].Points)
	}
	for i, f := range fibers {
		fd := FiberData{
			Base:   [3]float64{f.Base.X, f.Base.Y, f.Base.Z},
			Hue:    f.Color.Hue,
			Color:  f.Color.Hex(),
			Points: make([][3]float64, 0, len(f.Points)),
		}
		for _, p := range f.Points {
			if !p.IsFinite() {
				fd.Dropped++
				continue
			}
			fd.Points = append(fd.Points, [3]float64{p.X, p.Y, p.Z})
		}
		if !f.Base.IsFinite() {
			fd.Base = [3]float64{}
		}
		data.Fibers[i] = fd
	}
	return data
}

// WriteJSON encodes the fibers with every sample to w.
func WriteJSON(w io.Writer, name string, fibers []hopf.Fiber) error {
	if len(fibers) == 0 {
		return ErrEmptyExport
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(name, fibers))
}

func ExportJSON(path, name string, fibers []hopf.Fiber) error {
	if len(fibers) == 0 {
		return ErrEmptyExport
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, name, fibers)
}

func ExportJSONStdout(name string, fibers []hopf.Fiber) error {
	return WriteJSON(os.Stdout, name, fibers)
}
