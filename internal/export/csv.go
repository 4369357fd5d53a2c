package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"voxelpack/pkg/geometry"
)

// WriteCSV writes one x,y,r row per circle after a header row. Values use
// the shortest decimal form that parses back to the same float64.
func WriteCSV(w io.Writer, circles []geometry.Circle) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "r"}); err != nil {
		return err
	}

	row := make([]string, 3)
	for _, c := range circles {
		row[0] = formatFloat(c.Center.X)
		row[1] = formatFloat(c.Center.Y)
		row[2] = formatFloat(c.Radius)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the circle rows to path.
func WriteCSVFile(path string, circles []geometry.Circle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, circles); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
