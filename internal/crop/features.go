package crop

// FeatureColumns is the column order the scaler and classifier were fit on.
// Reordering it silently corrupts every prediction.
var FeatureColumns = [...]string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

// FeatureVector is one row of raw soil and climate measurements in FeatureColumns order.
type FeatureVector [len(FeatureColumns)]float64

// Input is a decoded prediction request with defaults applied.
type Input struct {
	N           float64
	P           float64
	K           float64
	PH          float64
	Temperature float64
	Humidity    float64
	Rainfall    float64

	// City is echoed back untouched; it may hold any JSON value the client sent.
	City any
}

// Defaults for fields missing from a request.
const (
	DefaultN           = 0.0
	DefaultP           = 0.0
	DefaultK           = 0.0
	DefaultPH          = 7.0
	DefaultTemperature = 25.0
	DefaultHumidity    = 50.0
	DefaultRainfall    = 0.0
	DefaultCity        = "Unknown"
)

// DefaultInput returns the input used for an empty JSON object.
func DefaultInput() Input {
	return Input{
		N:           DefaultN,
		P:           DefaultP,
		K:           DefaultK,
		PH:          DefaultPH,
		Temperature: DefaultTemperature,
		Humidity:    DefaultHumidity,
		Rainfall:    DefaultRainfall,
		City:        DefaultCity,
	}
}

// Features assembles the input into FeatureColumns order.
func (in Input) Features() FeatureVector {
	return FeatureVector{in.N, in.P, in.K, in.Temperature, in.Humidity, in.PH, in.Rainfall}
}
