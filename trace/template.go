package trace

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kelseymh/tracefit"
)

// ReadTemplate loads the normalized response template for a detector
// channel, used only for overlay rendering. It returns (nil, nil) when
// no template file exists for the channel; the overlay simply omits it.
func ReadTemplate(dir, detname string, channel int, sensor tracefit.Sensor) ([]float64, error) {
	if dir == "" || detname == "" {
		return nil, nil
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_ch%d.csv", detname, sensor, channel))

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, path, err)
	}

	tmpl := make([]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", ErrInvalidInput, path, i+1, err)
		}
		tmpl = append(tmpl, v)
	}
	return tmpl, nil
}
