package export

import (
	"encoding/csv"
	"io"

	"github.com/san-kum/railsim/internal/shot"
	"github.com/san-kum/railsim/internal/sweep"
)

var shotHeader = []string{"time_s", "position_m", "speed_m_s", "voltage_v", "current_a"}

// WriteShotCSV writes one row per time sample.
func WriteShotCSV(w io.Writer, res *shot.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(shotHeader); err != nil {
		return err
	}
	for i := 0; i < res.Len(); i++ {
		s := res.Sample(i)
		row := []string{
			formatFloat(s.Time),
			formatFloat(s.Position),
			formatFloat(s.Speed),
			formatFloat(s.Voltage),
			formatFloat(s.Current),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SweepHeader is the CSV header for a sweep over field.
func SweepHeader(field sweep.Field) []string {
	return []string{
		field.String(),
		"speed_m_s", "voltage_v", "current_a",
		"kinetic_energy_j", "stored_energy_j", "efficiency_pct",
		"error",
	}
}

// WriteSweepCSV writes one row per swept value. Failed points leave the
// numeric columns empty and carry the error text.
func WriteSweepCSV(w io.Writer, res *sweep.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(SweepHeader(res.Field)); err != nil {
		return err
	}
	for _, p := range res.Points {
		row := []string{formatFloat(p.Value), "", "", "", "", "", "", ""}
		if p.OK() {
			row[1] = formatFloat(p.Exit.Speed)
			row[2] = formatFloat(p.Exit.Voltage)
			row[3] = formatFloat(p.Exit.Current)
			row[4] = formatFloat(p.Efficiency.KineticEnergy)
			row[5] = formatFloat(p.Efficiency.StoredEnergy)
			row[6] = formatFloat(p.Efficiency.Percent)
		} else {
			row[7] = p.Err.Error()
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
