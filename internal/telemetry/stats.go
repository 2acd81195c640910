package telemetry

// EpochStats holds aggregated scalar measurements for a single simulation
// epoch, written to telemetry.csv once per sampling interval.
type EpochStats struct {
	Epoch int64 `csv:"epoch"`

	TotalSediment float64 `csv:"total_sediment"`
	TotalBedrock  float64 `csv:"total_bedrock"`
	MinHeight     float64 `csv:"min_height"`
	MaxHeight     float64 `csv:"max_height"`
	MeanHeight    float64 `csv:"mean_height"`

	// DominantWavelength is the estimated periodic dune spacing along the
	// wind axis, in cells, or 0 when it could not be estimated.
	DominantWavelength float64 `csv:"dominant_wavelength"`
}
