package almanac

// Stage is a named category of the almanac.
type Stage string

const (
	Seed        Stage = "seed"
	Soil        Stage = "soil"
	Fertilizer  Stage = "fertilizer"
	Water       Stage = "water"
	Light       Stage = "light"
	Temperature Stage = "temperature"
	Humidity    Stage = "humidity"
	Location    Stage = "location"
)

// CanonicalOrder is the order of stages used to translate a seed into a location.
func CanonicalOrder() []Stage {
	return []Stage{Seed, Soil, Fertilizer, Water, Light, Temperature, Humidity, Location}
}

func (s Stage) String() string {
	return string(s)
}

type stagePair struct {
	from, to Stage
}
