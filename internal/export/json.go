package export

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/san-kum/railsim/internal/physics"
	"github.com/san-kum/railsim/internal/shot"
	"github.com/san-kum/railsim/internal/sweep"
)

type ExitData struct {
	Index   int     `json:"index"`
	Time    float64 `json:"time_s"`
	Speed   float64 `json:"speed_m_s"`
	Voltage float64 `json:"voltage_v"`
	Current float64 `json:"current_a"`
}

type EfficiencyData struct {
	GasMoles      float64 `json:"gas_moles"`
	GasMass       float64 `json:"gas_mass_kg"`
	KineticEnergy float64 `json:"kinetic_energy_j"`
	StoredEnergy  float64 `json:"stored_energy_j"`
	Percent       float64 `json:"efficiency_pct"`
}

type ShotData struct {
	Integrator string             `json:"integrator"`
	Params     physics.Params     `json:"params"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
	Exit       *ExitData          `json:"exit,omitempty"`
	Efficiency *EfficiencyData    `json:"efficiency,omitempty"`
	Error      string             `json:"error,omitempty"`
	Time       []float64          `json:"time_s"`
	Position   []float64          `json:"position_m"`
	Speed      []float64          `json:"speed_m_s"`
	Voltage    []float64          `json:"voltage_v"`
	Current    []float64          `json:"current_a"`
}

type PointData struct {
	Value      float64         `json:"value"`
	Exit       *ExitData       `json:"exit,omitempty"`
	Efficiency *EfficiencyData `json:"efficiency,omitempty"`
	Error      string          `json:"error,omitempty"`
}

type SweepData struct {
	Field  string      `json:"field"`
	Unit   string      `json:"display_unit"`
	Scale  float64     `json:"display_scale"`
	Points []PointData `json:"points"`
}

func exitData(e shot.Exit) *ExitData {
	return &ExitData{Index: e.Index, Time: e.Time, Speed: e.Speed, Voltage: e.Voltage, Current: e.Current}
}

func efficiencyData(e shot.Efficiency) *EfficiencyData {
	return &EfficiencyData{
		GasMoles:      e.GasMoles,
		GasMass:       e.GasMass,
		KineticEnergy: e.KineticEnergy,
		StoredEnergy:  e.StoredEnergy,
		Percent:       e.Percent,
	}
}

// NewShotData captures an Outcome. failure is the error that stopped exit
// or efficiency extraction, if any; the stages it prevented are omitted.
func NewShotData(out *shot.Outcome, failure error) ShotData {
	res := out.Result
	data := ShotData{
		Integrator: res.Integrator,
		Params:     res.Params,
		Steps:      res.StepsTaken,
		Metrics:    res.Metrics,
		Time:       res.Time,
		Position:   res.Position,
		Speed:      res.Speed,
		Voltage:    res.Voltage,
		Current:    res.Current,
	}
	switch {
	case failure == nil:
		data.Exit = exitData(out.Exit)
		data.Efficiency = efficiencyData(out.Efficiency)
	case errors.Is(failure, shot.ErrDegenerateEnergy), errors.Is(failure, shot.ErrNonPhysicalEfficiency):
		data.Exit = exitData(out.Exit)
		data.Error = failure.Error()
	default:
		data.Error = failure.Error()
	}
	return data
}

func NewSweepData(res *sweep.Result) SweepData {
	data := SweepData{
		Field:  res.Field.String(),
		Unit:   res.Field.Unit(),
		Scale:  res.Field.Scale(),
		Points: make([]PointData, len(res.Points)),
	}
	for i, p := range res.Points {
		pd := PointData{Value: p.Value}
		if p.OK() {
			pd.Exit = exitData(p.Exit)
			pd.Efficiency = efficiencyData(p.Efficiency)
		} else {
			pd.Error = p.Err.Error()
		}
		data.Points[i] = pd
	}
	return data
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func WriteShotJSON(w io.Writer, out *shot.Outcome, failure error) error {
	return writeJSON(w, NewShotData(out, failure))
}

// WriteSweepJSON encodes res. Failed points carry their error text instead
// of NaN values, which JSON cannot represent.
func WriteSweepJSON(w io.Writer, res *sweep.Result) error {
	return writeJSON(w, NewSweepData(res))
}
