package pluto

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
)

// shapefile attribute columns; dBase names are limited to 10 characters.
var shapeFields = []shp.Field{
	shp.StringField("BBL", 12),
	shp.NumberField("YEARBUILT", 4),
	shp.NumberField("NUMFLOORS", 4),
	shp.FloatField("ASSESSLAND", 16, 2),
	shp.FloatField("ASSESSTOT", 16, 2),
	shp.StringField("DECADE", 5),
	shp.StringField("VALUELEVEL", 40),
}

// WriteShapefile writes lots as lon/lat points with their derived levels.
// levels must be parallel to lots.
func WriteShapefile(path string, lots []Lot, levels []Levels) error {
	if len(levels) != len(lots) {
		return fmt.Errorf("got %d levels for %d lots", len(levels), len(lots))
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return fmt.Errorf("creating shapefile %s: %w", path, err)
	}
	err = writeLots(w, lots, levels)
	w.Close()
	if err != nil {
		return err
	}
	return fixDBFName(path)
}

func writeLots(w *shp.Writer, lots []Lot, levels []Levels) error {
	if err := w.SetFields(shapeFields); err != nil {
		return fmt.Errorf("setting shapefile fields: %w", err)
	}

	for i, l := range lots {
		row := int(w.Write(&shp.Point{X: l.Lon, Y: l.Lat}))
		values := []interface{}{
			l.BBL,
			int(l.YearBuilt),
			int(l.NumFloors),
			l.AssessLand,
			l.AssessTot,
			levels[i].Decade,
			levels[i].Combined(),
		}
		for field, v := range values {
			if err := w.WriteAttribute(row, field, v); err != nil {
				return fmt.Errorf("writing attribute %d of lot %s: %w", field, l.BBL, err)
			}
		}
	}
	return nil
}

// fixDBFName moves the attribute table to <base>.dbf. go-shp's writer
// names it <base>dbf, without the dot, while its reader expects <base>.dbf.
func fixDBFName(path string) error {
	base := path
	if strings.HasSuffix(strings.ToLower(base), ".shp") {
		base = base[:len(base)-len(".shp")]
	}
	if _, err := os.Stat(base + "dbf"); os.IsNotExist(err) {
		return nil
	}
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return fmt.Errorf("renaming attribute table: %w", err)
	}
	return nil
}
