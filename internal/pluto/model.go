// Package pluto loads and prepares NYC PLUTO tax-lot records.
package pluto

// Lot is one tax lot from the PLUTO dataset.
type Lot struct {
	BBL        string  `json:"bbl"`
	Borough    string  `json:"borough"`
	YearBuilt  float64 `json:"yearbuilt"`
	NumFloors  float64 `json:"numfloors"`
	AssessLand float64 `json:"assessland"`
	AssessTot  float64 `json:"assesstot"`
	XCoord     float64 `json:"xcoord"`
	YCoord     float64 `json:"ycoord"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
}

// Levels holds the derived categorical columns of a lot.
type Levels struct {
	Decade     string `json:"decade"`
	LandValue  string `json:"land_value"`
	TotalValue string `json:"total_value"`
}

// Combined returns the bivariate "land/total" level.
func (l Levels) Combined() string {
	if l.LandValue == "" || l.TotalValue == "" {
		return ""
	}
	return l.LandValue + "/" + l.TotalValue
}

// Value level labels used by the bivariate map.
var (
	LandLabels  = []string{"Low-value land", "Mid-value land", "High-value land"}
	TotalLabels = []string{"Low-value overall", "Mid-value overall", "High-value overall"}
)

// Default value cut points.
var (
	DefaultLandCuts  = []float64{7999, 19999}
	DefaultTotalCuts = []float64{29999, 99999}
)

// FloorThresholds are the "N+ floors" groups examined per decade.
var FloorThresholds = []float64{7, 10, 20, 30, 40, 50}

// CombinedLevels returns the nine bivariate levels, land-major.
func CombinedLevels() []string {
	out := make([]string, 0, len(LandLabels)*len(TotalLabels))
	for _, land := range LandLabels {
		for _, total := range TotalLabels {
			out = append(out, land+"/"+total)
		}
	}
	return out
}
