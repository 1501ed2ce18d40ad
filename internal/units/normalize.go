package units

// Metric is a conveyor description as supplied from outside: tonnes per hour,
// millimetres, metres, metres per second and degrees.
type Metric struct {
	CapacityTPH float64
	BeltWidthMM float64
	SpeedMPS    float64
	LengthM     float64
	LiftM       float64
	TroughDeg   float64
	LumpMM      float64
}

// Normalized is the same description in formula units. BeltWidthMM and
// LumpMM are kept so the lump check compares millimetres to millimetres.
type Normalized struct {
	Capacity    ShortTonsPerHour
	BeltWidth   Inches
	Speed       FeetPerMinute
	Length      Feet
	Lift        Feet
	Trough      Degrees
	BeltWidthMM float64
	LumpMM      float64
}

func Normalize(m Metric) Normalized {
	return Normalized{
		Capacity:    MetricTPHToShortTPH(m.CapacityTPH),
		BeltWidth:   MillimetersToInches(m.BeltWidthMM),
		Speed:       MPSToFPM(m.SpeedMPS),
		Length:      MetersToFeet(m.LengthM),
		Lift:        MetersToFeet(m.LiftM),
		Trough:      Degrees(m.TroughDeg),
		BeltWidthMM: m.BeltWidthMM,
		LumpMM:      m.LumpMM,
	}
}
