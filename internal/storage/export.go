package storage

import (
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/san-kum/multibody/internal/dynamics"
)

// ExportData is the self-contained json form of one rollout, suitable for
// downstream tooling outside the run store.
type ExportData struct {
	Mechanism  string             `json:"mechanism"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Positions  [][]float64        `json:"positions"`
	Velocities [][]float64        `json:"velocities"`
	Applied    [][]float64        `json:"applied,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportData(mechanism, controller string, dt, duration float64, result *dynamics.Result) ExportData {
	return ExportData{
		Mechanism:  mechanism,
		Controller: controller,
		Dt:         dt,
		Duration:   duration,
		Steps:      result.StepsTaken,
		Times:      result.Times,
		Positions:  result.Positions,
		Velocities: result.Velocities,
		Applied:    result.Applied,
		Metrics:    result.Metrics,
	}
}

func ExportJSON(path, mechanism, controller string, dt, duration float64, result *dynamics.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, mechanism, controller, dt, duration, result)
}

func ExportJSONStdout(mechanism, controller string, dt, duration float64, result *dynamics.Result) error {
	return writeExport(os.Stdout, mechanism, controller, dt, duration, result)
}

func writeExport(w io.Writer, mechanism, controller string, dt, duration float64, result *dynamics.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(mechanism, controller, dt, duration, result))
}
